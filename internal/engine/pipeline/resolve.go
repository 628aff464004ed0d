package pipeline

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/zerr"
)

// ResolveEdge computes the replacement for one reference made by a module of owner.
// It reports false when the reference is kept as written.
func (p *Pipeline) ResolveEdge(owner *domain.OutputUnit, e domain.ReferenceEdge) (domain.Replacement, bool, error) {
	if p.phase < phasePartitioned {
		return domain.Replacement{}, false, domain.ErrPhaseOrder
	}

	// Style imports are not runtime references.
	if owner.Kind == domain.KindStyle {
		return domain.Replacement{}, false, nil
	}

	request := StripLoaderPrefix(e.Request)
	target, hasTarget := p.graph.Module(e.Target)
	if hasTarget && (target.External || target.Kind == domain.KindExternal) {
		hasTarget = false
	}

	forceRelative := false
	if filepath.IsAbs(request) || strings.HasPrefix(request, "/") {
		if rel, ok := VendorRelative(request); ok {
			return literalEdit(e.Range, rel), true, nil
		}
		forceRelative = true
	}

	expanded, aliased := p.cfg.ExpandAlias(request)
	pathLike := IsRelativeRequest(request) || HasLoaderPrefix(e.Request) ||
		(aliased && (IsRelativeRequest(expanded) || filepath.IsAbs(expanded)))
	if hasTarget && (forceRelative || pathLike) {
		if targetUnit, ok := p.graph.UnitOf(target.ID); ok {
			return literalEdit(e.Range, UnitLiteral(owner.Path, targetUnit.Path)), true, nil
		}
	}

	if hasTarget && len(target.Assets) > 0 {
		return domain.Replacement{
			Range:   e.CallRange,
			Content: p.assetExpr(target.Assets[0]),
		}, true, nil
	}

	if hasTarget && p.needsVendorResolution(request, target) {
		ownerMod, _ := p.graph.Module(e.Owner)
		fromDir := filepath.Dir(StripLoaderPrefix(ownerMod.Path))
		resolved, err := p.resolver.Resolve(request, fromDir)
		if err != nil {
			wrapped := zerr.Wrap(domain.ErrUnresolvableReference, "cannot rewrite reference "+QuoteLiteral(request))
			wrapped = zerr.With(wrapped, "owner", ownerMod.Path)
			return domain.Replacement{}, false, zerr.With(wrapped, "reason", err.Error())
		}
		rel, ok := VendorRelative(resolved)
		if !ok {
			rel = request
		}
		return literalEdit(e.Range, rel), true, nil
	}

	if aliased {
		return literalEdit(e.Range, expanded), true, nil
	}
	return domain.Replacement{}, false, nil
}

// needsVendorResolution reports whether a bare package sub-path request names its target
// with an extension the runtime would not find on its own.
func (p *Pipeline) needsVendorResolution(request string, target *domain.ModuleRecord) bool {
	if !IsBareRequest(request) || SubPath(request) == "" || !IsVendorPath(target.Path) {
		return false
	}
	reqExt := path.Ext(request)
	targetExt := filepath.Ext(target.Path)
	if reqExt == targetExt {
		return false
	}
	if reqExt == "" && slices.Contains(p.cfg.ExtensionsOrDefault(), targetExt) {
		return false
	}
	return true
}

func (p *Pipeline) assetExpr(a domain.Asset) string {
	if p.cfg.CDNName != "" {
		return p.cfg.CDNName + " + " + QuoteLiteral(a.URL)
	}
	return QuoteLiteral(p.cfg.PublicPath + a.URL)
}

// UnitLiteral returns the relative request that loads unit to from unit from.
func UnitLiteral(from, to string) string {
	rel, err := filepath.Rel(filepath.FromSlash(path.Dir(from)), filepath.FromSlash(to))
	if err != nil {
		rel = to
	}
	rel = ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return rel
	}
	return "./" + rel
}

func literalEdit(r domain.Range, request string) domain.Replacement {
	return domain.Replacement{Range: r, Content: QuoteLiteral(request)}
}
