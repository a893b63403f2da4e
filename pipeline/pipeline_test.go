package pipeline

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/skillsenselab/fpipe/errors"
	"github.com/skillsenselab/fpipe/logger"
	"github.com/skillsenselab/fpipe/variable"
)

func TestPipeline_RunsInOrder(t *testing.T) {
	var order []string
	record := func(name string) Step[testCtx] {
		return func(testCtx) (any, error) {
			order = append(order, name)
			return name, nil
		}
	}

	p := Pipeline(record("one"), record("two"), record("three"))
	got, err := p(testCtx{})
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if got != "three" {
		t.Fatalf("expected last result, got %v", got)
	}
	if strings.Join(order, ",") != "one,two,three" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestPipeline_Empty(t *testing.T) {
	got, err := Pipeline[testCtx]()(testCtx{})
	if err != nil || got != nil {
		t.Fatalf("expected nil, got %v (%v)", got, err)
	}
}

func TestPipeline_StopsOnError(t *testing.T) {
	boom := fmt.Errorf("boom")
	ran := false
	p := Pipeline(
		func(testCtx) (any, error) { return nil, boom },
		func(testCtx) (any, error) { ran = true; return nil, nil },
	)
	if _, err := p(testCtx{}); err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
	if ran {
		t.Fatal("steps after a failure must not run")
	}
}

func TestPipeline_ResolvesFinalResult(t *testing.T) {
	v := variable.NewVariable("v")
	_ = v.Set("final")
	p := Pipeline(func(testCtx) (any, error) { return v, nil })
	got, err := p(testCtx{})
	if err != nil || got != "final" {
		t.Fatalf("expected final, got %v (%v)", got, err)
	}
}

func TestStore_VariableAndAttribute(t *testing.T) {
	target := testCtx{}
	sc := variable.New(target, variable.WithLogger(logger.Nop()))
	defer sc.Close()

	v := sc.Variable("v")
	_ = v.Set(3)
	result := sc.Attribute("result")

	addStep, err := Curry[testCtx](add, v, 4)
	if err != nil {
		t.Fatalf("curry failed: %v", err)
	}

	got, err := RunIn(sc, Store(result, addStep))
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
	if target["result"] != 7 {
		t.Fatalf("expected result stored on the context, got %v", target["result"])
	}
}

func TestStoreValue_AttributeToAttribute(t *testing.T) {
	target := testCtx{"value": 7, "result": nil}
	sc := variable.New(target, variable.WithLogger(logger.Nop()))
	defer sc.Close()

	v := sc.Attribute("value")
	r := sc.Attribute("result")

	got, err := RunIn(sc, Pipeline(StoreValue[testCtx](r, v)))
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
	if target["result"] != 7 {
		t.Fatalf("expected result written to the context, got %v", target["result"])
	}
}

func TestStore_ResolvesResultBeforeAssignment(t *testing.T) {
	inner := variable.NewVariable("inner")
	_ = inner.Set(7)
	target := variable.NewVariable("target")

	step := Store[testCtx](target, func(testCtx) (any, error) {
		return []any{inner}, nil
	})
	got, err := step(testCtx{})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if list := got.([]any); list[0] != 7 {
		t.Fatalf("returned value must be resolved, got %v", list[0])
	}

	stored, err := target.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if list := stored.([]any); list[0] != 7 {
		t.Fatalf("stored value must be resolved, got %v", list[0])
	}

	// Rebinding the inner variable must not alter what was stored.
	_ = inner.Set(99)
	stored, _ = target.Value()
	if list := stored.([]any); list[0] != 7 {
		t.Fatalf("stored value must be a snapshot, got %v", list[0])
	}
}

func TestStore_StepErrorSkipsAssignment(t *testing.T) {
	v := variable.NewVariable("v")
	boom := fmt.Errorf("boom")
	step := Store[testCtx](v, func(testCtx) (any, error) { return nil, boom })
	if _, err := step(testCtx{}); err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := v.Value(); !errors.HasCode(err, errors.ErrCodeUnboundVariable) {
		t.Fatal("failed steps must not bind the placeholder")
	}
}

func TestStore_ReadOnlyTarget(t *testing.T) {
	sc := variable.New(nil, variable.WithLogger(logger.Nop()))
	defer sc.Close()

	r, err := sc.Resource("db", variable.ResourceOf("conn", nil))
	if err != nil {
		t.Fatalf("resource failed: %v", err)
	}
	step := Store[testCtx](r, func(testCtx) (any, error) { return "other", nil })
	if _, err := step(testCtx{}); !errors.HasCode(err, errors.ErrCodeReadOnlyVariable) {
		t.Fatalf("expected read-only error, got %v", err)
	}
}

func TestRunIn_TargetTypeMismatch(t *testing.T) {
	sc := variable.New("not a map", variable.WithLogger(logger.Nop()))
	defer sc.Close()

	_, err := RunIn[testCtx](sc)
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected invalid-input error, got %v", err)
	}
}

func TestRun_ScopeLifecycle(t *testing.T) {
	target := testCtx{}
	var leaked variable.Placeholder

	got, err := Run(target, func(sc *variable.Scope) ([]Step[testCtx], error) {
		v := sc.Variable("v")
		_ = v.Set(2)
		leaked = v
		step, err := Curry[testCtx](add, v, 5)
		if err != nil {
			return nil, err
		}
		return []Step[testCtx]{Store(sc.Attribute("result"), step)}, nil
	}, variable.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got != 7 || target["result"] != 7 {
		t.Fatalf("expected 7, got %v / %v", got, target["result"])
	}
	if _, err := leaked.Value(); !errors.HasCode(err, errors.ErrCodeUnboundVariable) {
		t.Fatal("run must close its scope")
	}
}

func TestRun_BuildError(t *testing.T) {
	boom := fmt.Errorf("bad wiring")
	_, err := Run(testCtx{}, func(*variable.Scope) ([]Step[testCtx], error) {
		return nil, boom
	}, variable.WithLogger(logger.Nop()))
	if err != boom {
		t.Fatalf("expected build error, got %v", err)
	}
}

func constCond(b bool) Condition[testCtx] {
	return func(testCtx) (bool, error) { return b, nil }
}

func TestCombinators(t *testing.T) {
	eval := func(c Condition[testCtx]) bool {
		b, err := c(testCtx{})
		if err != nil {
			t.Fatalf("condition failed: %v", err)
		}
		return b
	}

	if eval(Not(constCond(true))) || !eval(Not(constCond(false))) {
		t.Fatal("not is wrong")
	}
	if !eval(Or(constCond(false), constCond(true))) {
		t.Fatal("or must be true when any holds")
	}
	if eval(Or[testCtx]()) {
		t.Fatal("empty or must be false")
	}
	if eval(And(constCond(true), constCond(false))) {
		t.Fatal("and must be false when any fails")
	}
	if !eval(And[testCtx]()) {
		t.Fatal("empty and must be true")
	}
}

func TestCombinators_ShortCircuit(t *testing.T) {
	called := false
	spy := func(testCtx) (bool, error) { called = true; return true, nil }

	if b, _ := Or(constCond(true), spy)(testCtx{}); !b || called {
		t.Fatal("or must short-circuit on the first true")
	}
	called = false
	if b, _ := And(constCond(false), spy)(testCtx{}); b || called {
		t.Fatal("and must short-circuit on the first false")
	}
}

func TestIf_Branches(t *testing.T) {
	then := func(testCtx) (any, error) { return "then", nil }
	els := func(testCtx) (any, error) { return "else", nil }

	got, err := If(constCond(true), then, els)(testCtx{})
	if err != nil || got != "then" {
		t.Fatalf("expected then, got %v (%v)", got, err)
	}
	got, err = If(constCond(false), then, els)(testCtx{})
	if err != nil || got != "else" {
		t.Fatalf("expected else, got %v (%v)", got, err)
	}
	got, err = If(constCond(false), then, nil)(testCtx{})
	if err != nil || got != nil {
		t.Fatalf("missing branch must produce nil, got %v (%v)", got, err)
	}
}

func TestUtilitySteps(t *testing.T) {
	v := variable.NewVariable("v")
	_ = v.Set(2)

	got, err := List[testCtx](1, v, 3)(testCtx{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	list := got.([]any)
	if list[0] != 1 || list[1] != 2 || list[2] != 3 {
		t.Fatalf("unexpected list: %v", list)
	}

	got, err = Dict[testCtx](map[string]any{"a": v, "b": "keep"})(testCtx{})
	if err != nil {
		t.Fatalf("dict failed: %v", err)
	}
	m := got.(map[string]any)
	if m["a"] != 2 || m["b"] != "keep" {
		t.Fatalf("unexpected dict: %v", m)
	}

	got, err = SetOf[testCtx](v, 9)(testCtx{})
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	s := got.(*variable.Set)
	if !s.Has(2) || !s.Has(9) {
		t.Fatalf("unexpected set members: %v", s.Items())
	}

	got, err = Apply[testCtx](v)(testCtx{})
	if err != nil || got != 2 {
		t.Fatalf("apply failed: %v (%v)", got, err)
	}
}

func TestWithLogging_EmitsStepName(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf)

	step := WithLogging("compute", log, func(testCtx) (any, error) { return 1, nil })
	if _, err := step(testCtx{}); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"step":"compute"`) {
		t.Fatalf("expected step field in log output, got %s", out)
	}
	if !strings.Contains(out, "step finished") {
		t.Fatalf("expected finish message, got %s", out)
	}
}

func TestWithLogging_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf)

	boom := fmt.Errorf("boom")
	step := WithLogging("compute", log, func(testCtx) (any, error) { return nil, boom })
	if _, err := step(testCtx{}); err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
	if !strings.Contains(buf.String(), "step failed") {
		t.Fatalf("expected failure message, got %s", buf.String())
	}
}

func TestWithTracing_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	step := WithTracing("compute", func(testCtx) (any, error) { return 1, nil })
	if _, err := step(testCtx{}); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "compute" {
		t.Fatalf("unexpected span name %q", spans[0].Name())
	}
}
