package engine

import (
	"context"

	"github.com/atomicstack/update-all/internal/engine/state"
)

// DefaultActionName labels the single button of a message screen.
const DefaultActionName = "Ok"

// Frame is everything a drawer needs to paint one screen. Text is already
// interpolated.
type Frame struct {
	UI      string
	Header  string
	Text    []string
	Entries []FrameEntry
	Actions []FrameAction
}

type FrameEntry struct {
	Title       string
	Description string
	Selected    bool
}

type FrameAction struct {
	Title    string
	Selected bool
}

// SelectedEntry returns the index of the selected entry or -1.
func (f Frame) SelectedEntry() int {
	for i, e := range f.Entries {
		if e.Selected {
			return i
		}
	}
	return -1
}

// SelectedAction returns the index of the selected action or -1.
func (f Frame) SelectedAction() int {
	for i, a := range f.Actions {
		if a.Selected {
			return i
		}
	}
	return -1
}

// Drawer paints frames and blocks for key presses.
type Drawer interface {
	Draw(f Frame) error
	ReadKey(ctx context.Context) (Key, error)
	Clear() error
}

// Result is what a section hands back after one key: either the raw key it
// consumed, or a chain the runtime must resolve.
type Result struct {
	Key       Key
	Chain     Chain
	Requested bool
}

func keyResult(k Key) Result {
	return Result{Key: k}
}

func chainResult(k Key, c Chain) Result {
	return Result{Key: k, Chain: c, Requested: true}
}

// Section is the active representation of one screen.
type Section interface {
	// ProcessKey draws the current state and blocks for exactly one key.
	ProcessKey(ctx context.Context) (Result, error)
	// Reset runs every time the screen becomes active.
	Reset()
	// Clear wipes the drawing surface without moving in the history.
	Clear() error
}

// SectionFactory builds sections for expanded screens.
type SectionFactory interface {
	NewSection(uiType string, screen *Screen, interp *Interpolator) (Section, error)
}

// SectionFactoryFunc adapts a function to SectionFactory.
type SectionFactoryFunc func(uiType string, screen *Screen, interp *Interpolator) (Section, error)

func (f SectionFactoryFunc) NewSection(uiType string, screen *Screen, interp *Interpolator) (Section, error) {
	return f(uiType, screen, interp)
}

// Sections returns the built-in menu, confirm and message sections drawing
// through d.
func Sections(d Drawer) SectionFactory {
	return SectionFactoryFunc(func(uiType string, screen *Screen, interp *Interpolator) (Section, error) {
		b := newSectionBase(d, screen, interp)
		switch uiType {
		case UIMenu:
			return &menuSection{sectionBase: b}, nil
		case UIConfirm:
			return &confirmSection{sectionBase: b}, nil
		case UIMessage:
			return &messageSection{sectionBase: b}, nil
		}
		return nil, configErrorf("", "no section for ui type %q", uiType)
	})
}

type sectionBase struct {
	drawer  Drawer
	screen  *Screen
	interp  *Interpolator
	nav     *state.Navigation
	hotkeys map[Key]Chain
}

func newSectionBase(d Drawer, screen *Screen, interp *Interpolator) sectionBase {
	hotkeys := make(map[Key]Chain)
	for _, hk := range screen.Hotkeys {
		for _, k := range hk.Keys {
			// node hotkeys precede inherited ones after expansion
			if _, taken := hotkeys[k]; !taken {
				hotkeys[k] = hk.Chain
			}
		}
	}
	return sectionBase{
		drawer:  d,
		screen:  screen,
		interp:  interp,
		nav:     state.NewNavigation(len(screen.Entries), len(screen.Actions)),
		hotkeys: hotkeys,
	}
}

func (b *sectionBase) Clear() error {
	return b.drawer.Clear()
}

// resetActions moves the lateral cursor to the preselected action, or the
// first one.
func (b *sectionBase) resetActions() {
	b.nav.ResetLateral()
	if b.screen.PreselectedAction == "" {
		return
	}
	for i, a := range b.screen.Actions {
		if a.Title == b.screen.PreselectedAction {
			b.nav.SetLateral(i)
			return
		}
	}
}

func (b *sectionBase) header() (string, error) {
	return b.interp.Interpolate(b.screen.Header)
}

func (b *sectionBase) actions() ([]FrameAction, error) {
	out := make([]FrameAction, len(b.screen.Actions))
	for i, a := range b.screen.Actions {
		title, err := b.interp.Interpolate(a.Title)
		if err != nil {
			return nil, err
		}
		out[i] = FrameAction{Title: title, Selected: i == b.nav.LateralPosition}
	}
	return out, nil
}

func (b *sectionBase) draw(f Frame) error {
	f.UI = b.screen.UI
	return b.drawer.Draw(f)
}

// selectedAction resolves the chain of the action under the lateral cursor.
func (b *sectionBase) selectedAction(k Key) (Result, error) {
	if len(b.screen.Actions) == 0 {
		return keyResult(k), nil
	}
	var entry *Entry
	if len(b.screen.Entries) > 0 {
		entry = &b.screen.Entries[b.nav.Position]
	}
	chain, err := ActionChain(b.screen.Actions[b.nav.LateralPosition], entry)
	if err != nil {
		return Result{}, err
	}
	return chainResult(k, chain), nil
}

type menuSection struct {
	sectionBase
}

func (s *menuSection) Reset() {
	s.resetActions()
}

// SelectEntry moves the entry cursor to the entry with the given id.
func (s *menuSection) SelectEntry(id string) bool {
	for i, e := range s.screen.Entries {
		if e.ID != "" && e.ID == id {
			return s.nav.SetPosition(i)
		}
	}
	return false
}

func (s *menuSection) ProcessKey(ctx context.Context) (Result, error) {
	header, err := s.header()
	if err != nil {
		return Result{}, err
	}
	entries := make([]FrameEntry, len(s.screen.Entries))
	for i, e := range s.screen.Entries {
		title, err := s.interp.Interpolate(e.Title)
		if err != nil {
			return Result{}, err
		}
		desc, err := s.interp.Interpolate(e.Description)
		if err != nil {
			return Result{}, err
		}
		entries[i] = FrameEntry{Title: title, Description: desc, Selected: i == s.nav.Position}
	}
	actions, err := s.actions()
	if err != nil {
		return Result{}, err
	}
	if err := s.draw(Frame{Header: header, Entries: entries, Actions: actions}); err != nil {
		return Result{}, err
	}

	k, err := s.drawer.ReadKey(ctx)
	if err != nil {
		return Result{}, err
	}
	switch k {
	case KeyUp:
		s.nav.Up()
	case KeyDown:
		s.nav.Down()
	case KeyLeft:
		s.nav.Left()
	case KeyRight:
		s.nav.Right()
	default:
		if chain, ok := s.hotkeys[k]; ok {
			return chainResult(k, chain), nil
		}
		if k == KeyEnter {
			return s.selectedAction(k)
		}
	}
	return keyResult(k), nil
}

type confirmSection struct {
	sectionBase
}

func (s *confirmSection) Reset() {
	s.resetActions()
}

func (s *confirmSection) ProcessKey(ctx context.Context) (Result, error) {
	header, err := s.header()
	if err != nil {
		return Result{}, err
	}
	text, err := s.interp.Lines(s.screen.Text)
	if err != nil {
		return Result{}, err
	}
	actions, err := s.actions()
	if err != nil {
		return Result{}, err
	}
	if err := s.draw(Frame{Header: header, Text: text, Actions: actions}); err != nil {
		return Result{}, err
	}

	k, err := s.drawer.ReadKey(ctx)
	if err != nil {
		return Result{}, err
	}
	switch k {
	case KeyLeft:
		s.nav.Left()
	case KeyRight:
		s.nav.Right()
	default:
		if chain, ok := s.hotkeys[k]; ok {
			return chainResult(k, chain), nil
		}
		if k == KeyEnter {
			return s.selectedAction(k)
		}
	}
	return keyResult(k), nil
}

type messageSection struct {
	sectionBase
}

func (s *messageSection) Reset() {}

func (s *messageSection) ProcessKey(ctx context.Context) (Result, error) {
	header, err := s.header()
	if err != nil {
		return Result{}, err
	}
	text, err := s.interp.Lines(s.screen.Text)
	if err != nil {
		return Result{}, err
	}
	name := s.screen.ActionName
	if name == "" {
		name = DefaultActionName
	}
	label, err := s.interp.Interpolate(name)
	if err != nil {
		return Result{}, err
	}
	frame := Frame{Header: header, Text: text, Actions: []FrameAction{{Title: label, Selected: true}}}
	if err := s.draw(frame); err != nil {
		return Result{}, err
	}

	k, err := s.drawer.ReadKey(ctx)
	if err != nil {
		return Result{}, err
	}
	if chain, ok := s.hotkeys[k]; ok {
		return chainResult(k, chain), nil
	}
	if k != KeyEnter {
		return keyResult(k), nil
	}
	if len(s.screen.Effects) == 0 {
		return chainResult(k, Chain{Navigate{Target: TargetBack}}), nil
	}
	return chainResult(k, s.screen.Effects), nil
}
