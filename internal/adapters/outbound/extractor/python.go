// Package extractor provides the per-language structural extractors. The
// Python extractor is grammar-backed via tree-sitter; the TypeScript
// extractor is a conservative pattern scanner. Both sit behind
// domain.Extractor so either can be swapped for a different parser without
// touching callers.
package extractor

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/prlens/prlens/internal/domain"
)

// branchNodeTypes are the Python AST node types counted toward the
// cyclomatic-complexity estimate.
var branchNodeTypes = map[string]bool{
	"if_statement":           true,
	"elif_clause":            true,
	"for_statement":          true,
	"while_statement":        true,
	"except_clause":          true,
	"case_clause":            true,
	"conditional_expression": true,
	"boolean_operator":       true,
}

// PythonExtractor implements domain.Extractor with a full tree-sitter parse.
type PythonExtractor struct {
	maxBytes int
}

// NewPython creates a Python extractor that aborts on content larger than
// maxBytes to bound worst-case latency.
func NewPython(maxBytes int) *PythonExtractor {
	return &PythonExtractor{maxBytes: maxBytes}
}

func (e *PythonExtractor) Extract(content string) (*domain.StructuralSummary, error) {
	if len(content) > e.maxBytes {
		return nil, &domain.ExtractionError{
			Kind:    domain.ExtractTooLarge,
			Message: fmt.Sprintf("content is %d bytes (ceiling %d)", len(content), e.maxBytes),
		}
	}

	total, comments, blanks := lineStats(content, func(trimmed string) bool {
		return strings.HasPrefix(trimmed, "#")
	})
	summary := &domain.StructuralSummary{
		Declarations: []domain.Declaration{},
		Complexity:   map[string]int{},
		TotalLines:   total,
		CommentLines: comments,
		BlankLines:   blanks,
		Confidence:   domain.ConfidenceExact,
	}
	if strings.TrimSpace(content) == "" {
		return summary, nil
	}

	// A tree-sitter parser is not safe for concurrent use, so each call
	// owns its own.
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	src := []byte(content)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, &domain.ExtractionError{
			Kind:    domain.ExtractSyntaxError,
			Message: err.Error(),
		}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &domain.ExtractionError{
			Kind:    domain.ExtractSyntaxError,
			Line:    firstErrorLine(root),
			Message: "invalid syntax",
		}
	}

	e.walk(root, src, 0, "", summary)
	return summary, nil
}

// walk collects declarations and per-function complexity estimates. scope is
// the dotted name of the enclosing class/function, used to qualify methods.
func (e *PythonExtractor) walk(node *sitter.Node, src []byte, depth int, scope string, summary *domain.StructuralSummary) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "import_statement", "import_from_statement":
			summary.Declarations = append(summary.Declarations, domain.Declaration{
				Kind:      domain.DeclImport,
				Name:      importName(child, src),
				StartLine: int(child.StartPoint().Row) + 1,
				EndLine:   int(child.EndPoint().Row) + 1,
				Depth:     depth,
			})

		case "class_definition":
			e.collectClass(child, src, depth, scope, summary)

		case "function_definition":
			e.collectFunction(child, src, depth, scope, summary)

		case "decorated_definition":
			// The decorated wrapper owns the decorator lines; the inner
			// definition carries the name and body.
			for j := 0; j < int(child.NamedChildCount()); j++ {
				inner := child.NamedChild(j)
				switch inner.Type() {
				case "class_definition":
					e.collectClass(inner, src, depth, scope, summary)
				case "function_definition":
					e.collectFunction(inner, src, depth, scope, summary)
				}
			}

		default:
			e.walk(child, src, depth, scope, summary)
		}
	}
}

func (e *PythonExtractor) collectClass(node *sitter.Node, src []byte, depth int, scope string, summary *domain.StructuralSummary) {
	name := fieldText(node, "name", src)
	if name == "" {
		return
	}
	summary.Declarations = append(summary.Declarations, domain.Declaration{
		Kind:      domain.DeclClass,
		Name:      qualify(scope, name),
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		Depth:     depth,
	})
	if body := node.ChildByFieldName("body"); body != nil {
		e.walk(body, src, depth+1, qualify(scope, name), summary)
	}
}

func (e *PythonExtractor) collectFunction(node *sitter.Node, src []byte, depth int, scope string, summary *domain.StructuralSummary) {
	name := fieldText(node, "name", src)
	if name == "" {
		return
	}
	qualified := qualify(scope, name)
	summary.Declarations = append(summary.Declarations, domain.Declaration{
		Kind:      domain.DeclFunction,
		Name:      qualified,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		Depth:     depth,
	})
	summary.Complexity[qualified] = 1 + countBranches(node)
	if body := node.ChildByFieldName("body"); body != nil {
		e.walk(body, src, depth+1, qualified, summary)
	}
}

// countBranches counts branching constructs in the subtree. Nested function
// bodies are included, which keeps this an estimate rather than a strict
// per-function measure.
func countBranches(node *sitter.Node) int {
	count := 0
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if branchNodeTypes[child.Type()] {
			count++
		}
		count += countBranches(child)
	}
	return count
}

// firstErrorLine locates the first ERROR or missing node for diagnostics.
func firstErrorLine(node *sitter.Node) int {
	if node.Type() == "ERROR" || node.IsMissing() {
		return int(node.StartPoint().Row) + 1
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.HasError() {
			continue
		}
		if line := firstErrorLine(child); line > 0 {
			return line
		}
	}
	if node.HasError() {
		return int(node.StartPoint().Row) + 1
	}
	return 0
}

func fieldText(node *sitter.Node, field string, src []byte) string {
	f := node.ChildByFieldName(field)
	if f == nil {
		return ""
	}
	return string(src[f.StartByte():f.EndByte()])
}

// importName reduces an import statement to the imported module path.
func importName(node *sitter.Node, src []byte) string {
	text := string(src[node.StartByte():node.EndByte()])
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "from ") {
		rest := strings.TrimPrefix(text, "from ")
		if idx := strings.Index(rest, " import"); idx >= 0 {
			return strings.TrimSpace(rest[:idx])
		}
		return rest
	}
	return strings.TrimSpace(strings.TrimPrefix(text, "import "))
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}
