//go:build linux || freebsd || openbsd || netbsd || dragonfly

package host

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var errNoClient = errors.New("pinned window not managed yet")

// motif WM hints: flags, functions, decorations, input mode, status.
const motifHintsDecorations = 1 << 1

// netWMStateAdd is the _NET_WM_STATE client message action that sets a state.
const netWMStateAdd = 1

type floatAtoms struct {
	clientList xproto.Atom
	wmName     xproto.Atom
	utf8       xproto.Atom
	motif      xproto.Atom
	state      xproto.Atom
	above      xproto.Atom
}

// floatWindow asks the X11 window manager to drop the decorations of the
// top level window titled title and to keep it above other windows.
func floatWindow(title string) error {
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()

	root := xproto.Setup(conn).DefaultScreen(conn).Root
	a, err := internFloatAtoms(conn)
	if err != nil {
		return err
	}
	list, err := xproto.GetProperty(conn, false, root, a.clientList, xproto.AtomWindow, 0, 1<<16).Reply()
	if err != nil {
		return fmt.Errorf("read client list: %w", err)
	}
	win, ok := matchClient(unpackWindows(list.Value), func(w xproto.Window) string {
		return windowName(conn, w, a)
	}, title)
	if !ok {
		return errNoClient
	}

	hints := pack32(motifNoDecorations())
	err = xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, win, a.motif, a.motif, 32,
		uint32(len(hints)/4), hints).Check()
	if err != nil {
		return fmt.Errorf("set motif hints: %w", err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   a.state,
		Data:   xproto.ClientMessageDataUnionData32New(stateAbove(a.above)),
	}
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	if err := xproto.SendEventChecked(conn, false, root, mask, string(ev.Bytes())).Check(); err != nil {
		return fmt.Errorf("raise pinned window: %w", err)
	}
	return nil
}

func internFloatAtoms(conn *xgb.Conn) (floatAtoms, error) {
	names := []string{"_NET_CLIENT_LIST", "_NET_WM_NAME", "UTF8_STRING", "_MOTIF_WM_HINTS", "_NET_WM_STATE", "_NET_WM_STATE_ABOVE"}
	got := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return floatAtoms{}, fmt.Errorf("intern %s: %w", name, err)
		}
		got[i] = reply.Atom
	}
	return floatAtoms{clientList: got[0], wmName: got[1], utf8: got[2], motif: got[3], state: got[4], above: got[5]}, nil
}

func windowName(conn *xgb.Conn, w xproto.Window, a floatAtoms) string {
	reply, err := xproto.GetProperty(conn, false, w, a.wmName, a.utf8, 0, 1024).Reply()
	if err == nil && len(reply.Value) > 0 {
		return string(reply.Value)
	}
	reply, err = xproto.GetProperty(conn, false, w, xproto.AtomWmName, xproto.AtomString, 0, 1024).Reply()
	if err != nil {
		return ""
	}
	return string(reply.Value)
}

// matchClient finds the newest client named title. _NET_CLIENT_LIST is in
// mapping order.
func matchClient(clients []xproto.Window, name func(xproto.Window) string, title string) (xproto.Window, bool) {
	for i := len(clients) - 1; i >= 0; i-- {
		if name(clients[i]) == title {
			return clients[i], true
		}
	}
	return 0, false
}

func unpackWindows(b []byte) []xproto.Window {
	out := make([]xproto.Window, 0, len(b)/4)
	for i := 0; i+4 <= len(b); i += 4 {
		out = append(out, xproto.Window(xgb.Get32(b[i:])))
	}
	return out
}

func pack32(vals []uint32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		xgb.Put32(b[4*i:], v)
	}
	return b
}

func motifNoDecorations() []uint32 {
	return []uint32{motifHintsDecorations, 0, 0, 0, 0}
}

func stateAbove(above xproto.Atom) []uint32 {
	// action, first property, second property, source indication (application)
	return []uint32{netWMStateAdd, uint32(above), 0, 1, 0}
}
