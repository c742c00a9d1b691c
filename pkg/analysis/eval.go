package analysis

import (
	"fmt"

	"github.com/expr-lang/expr"

	"dartagent/pkg/datastore"
)

// Evaluator runs user-authored expressions against every table in the
// session store. This is a trusted-input capability: the namespace is
// bound to the store plus a few numeric helpers, and nothing else, but no
// sandboxing is attempted beyond that. Do not feed it untrusted code.
type Evaluator struct {
	store *datastore.Store
}

// NewEvaluator binds an evaluator to a session store.
func NewEvaluator(store *datastore.Store) *Evaluator {
	return &Evaluator{store: store}
}

// environment builds the namespace visible to an expression:
//
//	data            map of key → table
//	keys()          stored keys
//	current(k, a)   current-period amount of account a in table k
//	prior(k, a)     prior-period amount of account a in table k
//	fmt_amount(v)   Korean 억/조 rendering of a raw amount
//
// Account names pass through the same greedy resolver the metric
// extractor uses.
func (e *Evaluator) environment() map[string]any {
	return map[string]any{
		"data": e.store.Tables(),
		"keys": func() []string { return e.store.Keys() },
		"current": func(key, account string) (float64, error) {
			return e.lookupAmount(key, account, false)
		},
		"prior": func(key, account string) (float64, error) {
			return e.lookupAmount(key, account, true)
		},
		"fmt_amount": func(v float64) string {
			formatted, _ := FormatAmount(v)
			return formatted
		},
	}
}

func (e *Evaluator) lookupAmount(key, account string, prior bool) (float64, error) {
	table, err := e.store.Get(key)
	if err != nil {
		return 0, err
	}
	res, ok := ResolveAccountName(table, account)
	if !ok {
		return 0, fmt.Errorf("'%s' 또는 유사한 항목을 찾을 수 없음", account)
	}
	row, ok := firstMatchingRow(table, res.Resolved)
	if !ok {
		return 0, fmt.Errorf("'%s' 항목의 금액 정보를 찾을 수 없음", res.Resolved)
	}
	amount := row.CurrentAmount
	if prior {
		amount = row.PriorAmount
	}
	if amount == nil {
		return 0, fmt.Errorf("'%s' 값이 없음 (NaN)", res.Resolved)
	}
	return *amount, nil
}

// Evaluate compiles and runs one expression. The expression's value is the
// result; a nil result is reported as an error rather than silently
// accepted, matching the "must produce a bound result" contract.
func (e *Evaluator) Evaluate(code string) (string, error) {
	program, err := expr.Compile(code, expr.Env(e.environment()))
	if err != nil {
		return "", fmt.Errorf("코드 컴파일 실패: %w", err)
	}

	out, err := expr.Run(program, e.environment())
	if err != nil {
		return "", fmt.Errorf("코드 실행 중 오류 발생: %w", err)
	}
	if out == nil {
		return "", fmt.Errorf("코드 실행은 성공했지만 결과 값이 없습니다")
	}

	return fmt.Sprintf("%v", out), nil
}
