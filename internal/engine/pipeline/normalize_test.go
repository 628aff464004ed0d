package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/engine/pipeline"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Replacement
		want string
	}{
		{
			name: "variable injection is emptied",
			in:   domain.Replacement{Content: "(function(module) {", Origin: domain.OriginVarInjection},
			want: "",
		},
		{
			name: "amd define origin is emptied",
			in:   domain.Replacement{Content: "!(function() {", Origin: domain.OriginAMDDefine},
			want: "",
		},
		{
			name: "amd marker is emptied",
			in:   domain.Replacement{Content: "__WEBPACK_AMD_DEFINE_ARRAY__ = [], __WEBPACK_AMD_DEFINE_RESULT__"},
			want: "",
		},
		{
			name: "loader identifier is replaced",
			in:   domain.Replacement{Content: "__webpack_require__('./a')"},
			want: "require('./a')",
		},
		{
			name: "every loader identifier is replaced",
			in:   domain.Replacement{Content: "__webpack_require__('./a'), __webpack_require__('./b')"},
			want: "require('./a'), require('./b')",
		},
		{
			name: "plain edit is kept",
			in:   domain.Replacement{Content: "'./a.js'"},
			want: "'./a.js'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := pipeline.Normalize([]domain.Replacement{tt.in})
			assert.Equal(t, tt.want, out[0].Content)
			assert.Equal(t, tt.in.Range, out[0].Range)
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := []domain.Replacement{
		{Content: "__webpack_require__(1)"},
		{Content: "x", Origin: domain.OriginVarInjection},
	}

	out := pipeline.Normalize(in)

	assert.Equal(t, "__webpack_require__(1)", in[0].Content)
	assert.Equal(t, "x", in[1].Content)
	assert.Equal(t, "require(1)", out[0].Content)
	assert.Empty(t, out[1].Content)
}
