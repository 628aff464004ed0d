package pipeline

import (
	"bytes"
	"cmp"
	"context"
	"slices"

	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/zerr"
)

// Render produces the emitted text of a unit by concatenating its modules in assignment order.
func (p *Pipeline) Render(ctx context.Context, unit *domain.OutputUnit) ([]byte, error) {
	if p.phase < phasePartitioned {
		return nil, domain.ErrPhaseOrder
	}

	var out bytes.Buffer
	for _, id := range unit.Modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, ok := p.graph.Module(id)
		if !ok {
			return nil, zerr.With(domain.ErrModuleNotFound, "module", id.String())
		}

		text, err := p.renderModule(unit, m)
		if err != nil {
			return nil, zerr.With(err, "unit", unit.Path)
		}
		if len(text) == 0 {
			continue
		}
		if out.Len() > 0 && !bytes.HasSuffix(out.Bytes(), []byte("\n")) {
			out.WriteByte('\n')
		}
		out.Write(text)
	}
	return out.Bytes(), nil
}

// RenderAll renders every unit of the current partition into a new OutputTree.
func (p *Pipeline) RenderAll(ctx context.Context) (*domain.OutputTree, error) {
	if p.phase < phasePartitioned {
		return nil, domain.ErrPhaseOrder
	}
	tree := domain.NewOutputTree()
	for u := range p.graph.Units().All() {
		text, err := p.Render(ctx, u)
		if err != nil {
			return nil, err
		}
		tree.Put(u.Path, text)
	}
	return tree, nil
}

func (p *Pipeline) renderModule(unit *domain.OutputUnit, m *domain.ModuleRecord) ([]byte, error) {
	switch m.Kind {
	case domain.KindScript:
		return p.renderScript(unit, m)
	case domain.KindJSONData, domain.KindStyle:
		return m.Source, nil
	case domain.KindStaticAsset:
		if len(m.Assets) == 0 {
			return m.Source, nil
		}
		return []byte("module.exports = " + p.assetExpr(m.Assets[0]) + ";\n"), nil
	case domain.KindExternal:
		return nil, nil
	default:
		return nil, zerr.With(zerr.New("unknown module kind"), "kind", m.Kind.String())
	}
}

func (p *Pipeline) renderScript(unit *domain.OutputUnit, m *domain.ModuleRecord) ([]byte, error) {
	edits := Normalize(m.Edits)
	for _, e := range p.graph.Edges(m.ID) {
		r, ok, err := p.ResolveEdge(unit, e)
		if err != nil {
			return nil, err
		}
		if ok {
			edits = append(edits, r)
		}
	}
	return ApplyEdits(m.Source, edits)
}

// ApplyEdits applies replacement edits to src.
// An edit lying entirely inside another edit is superseded by it; partial overlaps are an error.
func ApplyEdits(src []byte, edits []domain.Replacement) ([]byte, error) {
	if len(edits) == 0 {
		return src, nil
	}

	sorted := slices.Clone(edits)
	// Outer edits sort before the edits they contain.
	slices.SortStableFunc(sorted, func(a, b domain.Replacement) int {
		return cmp.Or(cmp.Compare(a.Range.Start, b.Range.Start), cmp.Compare(b.Range.End, a.Range.End))
	})

	kept := sorted[:0]
	for _, e := range sorted {
		if e.Range.Start < 0 || e.Range.End > len(src) || e.Range.Start > e.Range.End {
			return nil, zerr.With(zerr.With(domain.ErrEditOutOfRange, "start", e.Range.Start), "end", e.Range.End)
		}
		if n := len(kept); n > 0 {
			last := kept[n-1]
			if last.Range.Contains(e.Range) {
				continue
			}
			if last.Range.Overlaps(e.Range) {
				return nil, zerr.With(zerr.With(domain.ErrOverlappingEdits, "start", e.Range.Start), "end", e.Range.End)
			}
		}
		kept = append(kept, e)
	}

	var out bytes.Buffer
	out.Grow(len(src))
	pos := 0
	for _, e := range kept {
		out.Write(src[pos:e.Range.Start])
		out.WriteString(e.Content)
		pos = e.Range.End
	}
	out.Write(src[pos:])
	return out.Bytes(), nil
}
