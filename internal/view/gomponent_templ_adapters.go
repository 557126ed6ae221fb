package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// AdaptGomponentToTempl wraps a gomponents node so it can be passed to
// templ layouts.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

// AdaptTemplToGomponent embeds a templ component in a gomponents tree.
// gomponents does not pass a context down, so the caller supplies the one
// the component should see.
func AdaptTemplToGomponent(ctx context.Context, component templ.Component) gomponents.Node {
	return gomponents.NodeFunc(func(w io.Writer) error {
		return component.Render(ctx, w)
	})
}
