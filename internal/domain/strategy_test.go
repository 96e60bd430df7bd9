package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adaptermocks "rsdisco.dev/pkg/rsdisco/internal/adapter/mocks"
	"rsdisco.dev/pkg/rsdisco/internal/domain"
	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

func TestParseStrategyKind(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.StrategyKind
		wantErr bool
	}{
		{in: "", want: domain.StrategySyntax},
		{in: "syntax", want: domain.StrategySyntax},
		{in: " Extended ", want: domain.StrategyExtended},
		{in: "cargo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseStrategyKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewStrategy_Kind(t *testing.T) {
	assert.Equal(t, domain.StrategySyntax, domain.NewStrategy(domain.StrategySyntax, nil).Kind())
	assert.Equal(t, domain.StrategyExtended, domain.NewStrategy(domain.StrategyExtended, nil).Kind())
}

func TestSyntaxStrategy_RejectsFiles(t *testing.T) {
	strategy := domain.NewStrategy(domain.StrategySyntax, nil)

	_, err := strategy.ExpandFiles("src/lib.rs", []m.Value{domain.ParseValue(`"*.txt"`)})
	require.ErrorIs(t, err, domain.ErrUnsupportedParameterization)
}

func TestExtendedStrategy_ExpandFiles(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)

	fs.EXPECT().FindProjectRoot(m.Path("/crate/tests/it.rs")).Return(m.Path("/crate"), nil)
	fs.EXPECT().JoinPath("/crate", "in/*.json").Return(m.Path("/crate/in/*.json"))
	fs.EXPECT().JoinPath("/crate", "in/a.*").Return(m.Path("/crate/in/a.*"))
	fs.EXPECT().Glob("/crate/in/*.json").Return([]m.Path{"/crate/in/a.json", "/crate/in/b.json"}, nil)
	fs.EXPECT().Glob("/crate/in/a.*").Return([]m.Path{"/crate/in/a.json", "/crate/in/a.txt"}, nil)
	fs.EXPECT().RelPath(m.Path("/crate"), m.Path("/crate/in/a.json")).Return(m.Path("in/a.json"), nil)
	fs.EXPECT().RelPath(m.Path("/crate"), m.Path("/crate/in/b.json")).Return(m.Path("in/b.json"), nil)
	fs.EXPECT().RelPath(m.Path("/crate"), m.Path("/crate/in/a.txt")).Return(m.Path("in/a.txt"), nil)

	strategy := domain.NewStrategy(domain.StrategyExtended, fs)

	values, err := strategy.ExpandFiles("/crate/tests/it.rs", []m.Value{
		domain.ParseValue(`"in/*.json"`),
		domain.ParseValue(`"in/a.*"`),
	})
	require.NoError(t, err)

	var got []string
	for _, v := range values {
		assert.Equal(t, m.ValueString, v.Kind)
		got = append(got, v.Str)
	}

	assert.Equal(t, []string{"in/a.json", "in/b.json", "in/a.txt"}, got, "duplicates across patterns are dropped")
}

func TestExtendedStrategy_NoCrateRootGlobsNextToUnit(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)

	fs.EXPECT().FindProjectRoot(m.Path("/loose/it.rs")).Return(m.Path(""), errors.New("no Cargo.toml"))
	fs.EXPECT().JoinPath("/loose", "*.txt").Return(m.Path("/loose/*.txt"))
	fs.EXPECT().Glob("/loose/*.txt").Return(nil, nil)

	values, err := domain.NewStrategy(domain.StrategyExtended, fs).ExpandFiles("/loose/it.rs", []m.Value{domain.ParseValue(`"*.txt"`)})
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestExtendedStrategy_GlobError(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)

	fs.EXPECT().FindProjectRoot(m.Path("/crate/src/lib.rs")).Return(m.Path("/crate"), nil)
	fs.EXPECT().JoinPath("/crate", "[").Return(m.Path("/crate/["))
	fs.EXPECT().Glob("/crate/[").Return(nil, errors.New("syntax error in pattern"))

	_, err := domain.NewStrategy(domain.StrategyExtended, fs).ExpandFiles("/crate/src/lib.rs", []m.Value{domain.ParseValue(`"["`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expand files")
}
