package query

import (
	"iter"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/resolvermock/pkg/resolver"
)

// LanguageExpr is the language tag answered by Expr.
const LanguageExpr = "expr"

// Expr returns a find handler for boolean expr-lang predicates. Each visible
// resource is checked with the environment
//
//	path          string          the resource path
//	name          string          the last path segment
//	resourceType  string          the resource type
//	props         map[string]any  the properties
//
// for example `resourceType == "app/page" && props.title startsWith "Home"`.
// A query that does not compile to a boolean program gets nil. Resources
// whose evaluation fails are skipped.
func Expr(s *resolver.Session) resolver.FindHandler {
	return func(q, lang string) iter.Seq[resolver.Resource] {
		if lang != LanguageExpr {
			return nil
		}
		program, err := expr.Compile(q, expr.Env(exprEnv(nil)), expr.AsBool())
		if err != nil {
			return nil
		}
		return func(yield func(resolver.Resource) bool) {
			for r := range s.Walk("/") {
				if !matches(program, r) {
					continue
				}
				if !yield(r) {
					return
				}
			}
		}
	}
}

func matches(program *vm.Program, r resolver.Resource) bool {
	out, err := expr.Run(program, exprEnv(r))
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

func exprEnv(r resolver.Resource) map[string]any {
	if r == nil {
		return map[string]any{"path": "", "name": "", "resourceType": "", "props": map[string]any{}}
	}
	return map[string]any{
		"path":         r.Path(),
		"name":         r.Name(),
		"resourceType": r.ResourceType(),
		"props":        map[string]any(r.Properties()),
	}
}
