package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState couples the backend producers with a window's stream
// controller, which invalidates the window whenever a stream has new data.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the sources of interval batches.
type Bundle struct {
	Datasource *Datasource
	Simulator  *Simulator
}

func NewBundle(ds *Datasource, sim *Simulator) Bundle {
	return Bundle{
		Datasource: ds,
		Simulator:  sim,
	}
}

// TailStream adapts TailIntervals to the provider signature expected by
// stream.New.
func (b Bundle) TailStream(path string) func(context.Context) <-chan Batch {
	return func(ctx context.Context) <-chan Batch {
		return b.Datasource.TailIntervals(ctx, path)
	}
}
