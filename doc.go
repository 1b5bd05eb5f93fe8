// Package pricefield wires the price form element end to end: a currency
// catalog, per-locale number formatters, the element model and its
// renderers.
//
//	svc, err := pricefield.New(catalog.MustStatic(...), locale.NewFactory())
//	html, err := svc.Render(ctx, pricefield.RenderRequest{Locale: "de", Config: cfg})
//	sub, err := svc.Submit("de", cfg, r.PostForm)
//
// The packages under pkg/ can be used on their own when a host only needs
// part of the flow.
package pricefield
