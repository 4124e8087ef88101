package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	pprofile "github.com/google/pprof/profile"
	"github.com/stretchr/testify/require"

	"github.com/amplet/amplet/backend/ampl"
	"github.com/amplet/amplet/model"
	"github.com/amplet/amplet/profile"
	"github.com/amplet/amplet/translate"
)

func buildModel() *model.Model {
	m := model.New("m1")
	m.Var("x", model.WithBounds(0, 10))
	m.Equation("x>5")
	m.Minimize("x")
	return m
}

func TestProfileCollectsStatements(t *testing.T) {
	assert := require.New(t)

	path := filepath.Join(t.TempDir(), "amplet.pprof")
	p := profile.Start(profile.WithPath(path))
	assert.NoError(translate.New(buildModel(), ampl.NewProgram()).Run())
	p.Stop()

	// one variable, one constraint, one objective
	assert.Equal(3, p.NbStatements())

	f, err := os.Open(path)
	assert.NoError(err)
	defer f.Close()

	parsed, err := pprofile.Parse(f)
	assert.NoError(err)
	assert.NoError(parsed.CheckValid())
	assert.Len(parsed.SampleType, 1)
	assert.Equal("statements", parsed.SampleType[0].Type)
	assert.Len(parsed.Sample, 3)
}

func TestProfileNoOutput(t *testing.T) {
	assert := require.New(t)

	p := profile.Start(profile.WithNoOutput())
	assert.NoError(translate.New(buildModel(), ampl.NewProgram()).Run())
	p.Stop()
	assert.Equal(3, p.NbStatements())
}

func TestOverlappingSessions(t *testing.T) {
	assert := require.New(t)

	outer := profile.Start(profile.WithNoOutput())
	assert.NoError(translate.New(buildModel(), ampl.NewProgram()).Run())

	inner := profile.Start(profile.WithNoOutput())
	assert.NoError(translate.New(buildModel(), ampl.NewProgram()).Run())
	inner.Stop()
	outer.Stop()

	assert.Equal(3, inner.NbStatements())
	assert.Equal(6, outer.NbStatements())
}
