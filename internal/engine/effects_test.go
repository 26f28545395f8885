package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestResolver(values map[string]string, variables map[string]Variable, effects EffectRegistry) (*Resolver, *Store) {
	store := storeWith(values)
	items := map[string]*Screen{"main": {UI: UIMenu}, "other": {UI: UIMenu}}
	return NewResolver(store, variables, effects, items), store
}

func TestRotateVariableWraps(t *testing.T) {
	vars := map[string]Variable{"v": {Default: "a", Values: []string{"a", "b", "c"}}}
	r, store := newTestResolver(map[string]string{"v": "c"}, vars, nil)
	out, err := r.ResolveChain(Chain{RotateVariable{Target: "v"}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.Kind != OutcomeClear {
		t.Fatalf("expected clear_window, got %s", out.Kind)
	}
	if got := store.Get("v").String(); got != "a" {
		t.Fatalf("expected wrap to a, got %q", got)
	}
}

func TestRotateVariableUnknownCurrentLandsOnFirst(t *testing.T) {
	vars := map[string]Variable{"v": {Default: "a", Values: []string{"a", "b", "c"}}}
	r, store := newTestResolver(map[string]string{"v": "z"}, vars, nil)
	if _, err := r.ResolveChain(Chain{RotateVariable{Target: "v"}}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := store.Get("v").String(); got != "a" {
		t.Fatalf("expected fallback to first value a, got %q", got)
	}
}

func TestRotateVariableSingleValueDoesNotClear(t *testing.T) {
	vars := map[string]Variable{"v": {Default: "a", Values: []string{"a"}}}
	r, _ := newTestResolver(map[string]string{"v": "a"}, vars, nil)
	out, err := r.ResolveChain(Chain{RotateVariable{Target: "v"}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.Kind != OutcomeNone {
		t.Fatalf("expected no outcome when value is unchanged, got %s", out.Kind)
	}
}

func TestRotateVariableWithoutValues(t *testing.T) {
	r, _ := newTestResolver(map[string]string{"v": "a"}, map[string]Variable{"v": {Default: "a"}}, nil)
	if _, err := r.ResolveChain(Chain{RotateVariable{Target: "v"}}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestConditionEvaluatesOnlyMatchingBranch(t *testing.T) {
	var calls []string
	effects := EffectRegistry{}
	effects.Register("mark", func(e Custom) error {
		calls = append(calls, e.Param("branch"))
		return nil
	})
	r, _ := newTestResolver(map[string]string{"flag": "true"}, nil, effects)
	chain := Chain{Condition{
		Variable: "flag",
		True:     Chain{Custom{Name: "mark", Params: map[string]any{"branch": "true"}}, Navigate{Target: "other"}},
		False:    Chain{Custom{Name: "mark", Params: map[string]any{"branch": "false"}}, Navigate{Target: "main"}},
	}}
	out, err := r.ResolveChain(chain)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.Kind != OutcomeScreen || out.Target != "other" {
		t.Fatalf("expected navigation to other, got %+v", out)
	}
	if diff := cmp.Diff([]string{"true"}, calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestConditionRequiresBool(t *testing.T) {
	r, _ := newTestResolver(map[string]string{"flag": "yes"}, nil, nil)
	_, err := r.ResolveChain(Chain{Condition{Variable: "flag"}})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestConditionEndsChain(t *testing.T) {
	vars := map[string]Variable{"v": {Default: "a", Values: []string{"a", "b"}}}
	calls := 0
	effects := EffectRegistry{"later": func(Custom) error {
		calls++
		return nil
	}}

	cases := []struct {
		name  string
		flag  string
		chain Chain
		want  OutcomeKind
	}{
		{
			name: "branch redraws",
			flag: "true",
			chain: Chain{
				Condition{Variable: "flag", True: Chain{RotateVariable{Target: "v"}}},
				Navigate{Target: "other"},
			},
			want: OutcomeClear,
		},
		{
			name: "branch empty",
			flag: "false",
			chain: Chain{
				Condition{Variable: "flag", True: Chain{Navigate{Target: "other"}}},
				Custom{Name: "later"},
			},
			want: OutcomeNone,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls = 0
			r, _ := newTestResolver(map[string]string{"flag": tc.flag, "v": "a"}, vars, effects)
			out, err := r.ResolveChain(tc.chain)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if out.Kind != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, out.Kind)
			}
			if calls != 0 {
				t.Fatalf("expected effects after the condition to be skipped, got %d calls", calls)
			}
		})
	}
}

func TestNavigateShortCircuits(t *testing.T) {
	called := false
	effects := EffectRegistry{"later": func(Custom) error {
		called = true
		return nil
	}}
	r, _ := newTestResolver(nil, nil, effects)
	out, err := r.ResolveChain(Chain{Navigate{Target: TargetExitAndRun}, Custom{Name: "later"}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.Kind != OutcomeExitAndRun {
		t.Fatalf("expected exit_and_run, got %s", out.Kind)
	}
	if called {
		t.Fatalf("expected effects after navigate to be skipped")
	}
}

func TestNavigateUnknownTarget(t *testing.T) {
	r, _ := newTestResolver(nil, nil, nil)
	if _, err := r.ResolveChain(Chain{Navigate{Target: "missing"}}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCustomEffects(t *testing.T) {
	boom := errors.New("boom")
	effects := EffectRegistry{"fail": func(Custom) error { return boom }}
	r, _ := newTestResolver(nil, nil, effects)

	if _, err := r.ResolveChain(Chain{Custom{Name: "fail"}}); !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if _, err := r.ResolveChain(Chain{Custom{Name: "unknown"}}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error for unknown effect, got %v", err)
	}
}

func TestInlineScreenOutcome(t *testing.T) {
	r, _ := newTestResolver(nil, nil, nil)
	screen := &Screen{UI: UIMessage, Text: []string{"hi"}}
	out, err := r.ResolveChain(Chain{Inline{Screen: screen}, Navigate{Target: TargetAbort}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.Kind != OutcomeInline || out.Screen != screen {
		t.Fatalf("expected inline outcome, got %+v", out)
	}
}

func TestSelectNeedsMenu(t *testing.T) {
	r, _ := newTestResolver(nil, nil, nil)
	if _, err := r.ResolveChain(Chain{Select{Target: "x"}}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestActionChain(t *testing.T) {
	fixed := Chain{Navigate{Target: TargetBack}}
	got, err := ActionChain(Action{Type: ActionFixed, Fixed: fixed}, nil)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected fixed chain, got %v, %v", got, err)
	}

	entry := &Entry{Title: "E", Actions: map[string]Chain{"ok": fixed}}
	if _, err := ActionChain(Action{Type: ActionSymbol, Symbol: "ok"}, entry); err != nil {
		t.Fatalf("symbol: %v", err)
	}
	if _, err := ActionChain(Action{Type: ActionSymbol, Symbol: "toggle"}, entry); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error for missing symbol, got %v", err)
	}
	if _, err := ActionChain(Action{Type: ActionSymbol, Symbol: "ok"}, &Entry{Title: "bare"}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error for entry without actions, got %v", err)
	}
}
