package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theskyentist/gelato/pkg/emission"
	"github.com/theskyentist/gelato/pkg/model"
	"github.com/theskyentist/gelato/pkg/spectrum"
)

func testGroups() []emission.Group {
	return []emission.Group{
		{
			Name:          "Balmer",
			TieRedshift:   true,
			TieDispersion: true,
			Species: []emission.Species{
				{Name: "HI", Lines: []emission.Line{
					{Wavelength: 6564.61},
					{Wavelength: 4862.68},
				}},
			},
		},
		{
			Name:        "AGN",
			TieRedshift: true,
			Species: []emission.Species{
				{Name: "[OIII]", Lines: []emission.Line{
					{Wavelength: 5008.24, RelStrength: emission.Ratio(1)},
					{Wavelength: 4960.30, RelStrength: emission.Ratio(0.35)},
				}},
				{Name: "[NII]", Lines: []emission.Line{
					{Wavelength: 6585.27, RelStrength: emission.Ratio(1)},
					{Wavelength: 6549.86, RelStrength: emission.Ratio(0.34)},
				}},
			},
		},
	}
}

func newSpectrum(t *testing.T, groups []emission.Group) *spectrum.Spectrum {
	t.Helper()
	var wav, flux, sigma []float64
	for x := 4700.0; x <= 6700; x += 0.5 {
		wav = append(wav, x)
		flux = append(flux, 1)
		sigma = append(sigma, 0.1)
	}
	spec, err := spectrum.New(wav, flux, sigma, 0, groups, 50)
	require.Nil(t, err)
	return spec
}

func emissionModel(t *testing.T) *model.Compound {
	t.Helper()
	m, names, err := model.BuildEmission(newSpectrum(t, testGroups()))
	require.Nil(t, err)
	require.Equal(t, len(names), m.NParams())
	return m
}

func TestBuildEmission(t *testing.T) {
	assert := assert.New(t)
	spec := newSpectrum(t, testGroups())
	m, names, err := model.BuildEmission(spec)
	assert.Nil(err)
	assert.Equal(6, m.NComponents())
	assert.Equal(18, m.NParams())
	assert.Equal(len(names), m.NParams())
	assert.Equal("Balmer-HI-6564.61-Redshift", names[0])
	assert.Equal("Balmer-HI-6564.61-Flux", names[1])
	assert.Equal("Balmer-HI-6564.61-Dispersion", names[2])
	assert.Equal("AGN-[NII]-6549.86-Dispersion", names[17])

	for i, n := range names {
		idx, ok := m.Index(n)
		assert.True(ok)
		assert.Equal(i, idx)
	}

	c, lo, hi := m.Component(2)
	assert.Equal("SpectralFeature", c.Name())
	assert.Equal(6, lo)
	assert.Equal(9, hi)
}

func TestBuildEmissionGroups(t *testing.T) {
	assert := assert.New(t)
	spec := newSpectrum(t, testGroups())
	groups := testGroups()[:1]
	m, names, err := model.BuildEmission(spec, model.OptGroups(groups))
	assert.Nil(err)
	assert.Equal(6, m.NParams())
	assert.Len(names, 6)

	_, _, err = model.BuildEmission(spec, model.OptGroups(nil))
	assert.True(model.IsConfigurationError(err))
}

func TestTies(t *testing.T) {
	assert := assert.New(t)
	m := emissionModel(t)

	tests := []struct {
		msg, name string
		source    int
		scale     float64
	}{
		{"group z", "Balmer-HI-4862.68-Redshift", 0, 1},
		{"group disp", "Balmer-HI-4862.68-Dispersion", 2, 1},
		{"species z", "AGN-[OIII]-4960.3-Redshift", 6, 1},
		{"species disp", "AGN-[OIII]-4960.3-Dispersion", 8, 1},
		{"flux", "AGN-[OIII]-4960.3-Flux", 7, 0.35},
		{"cross species z", "AGN-[NII]-6585.27-Redshift", 6, 1},
		{"species over group", "AGN-[NII]-6549.86-Redshift", 12, 1},
		{"nii disp", "AGN-[NII]-6549.86-Dispersion", 14, 1},
		{"nii flux", "AGN-[NII]-6549.86-Flux", 13, 0.34},
	}

	for _, v := range tests {
		tie, ok := m.Tie(v.name)
		assert.True(ok, v.msg)
		assert.Equal(v.source, tie.Source, v.msg)
		assert.InDelta(v.scale, tie.Scale, 1e-12, v.msg)
	}
	assert.Len(m.Ties(), len(tests))

	free := []string{
		"Balmer-HI-6564.61-Redshift",
		"Balmer-HI-4862.68-Flux",
		"AGN-[OIII]-5008.24-Flux",
		// group dispersion is not tied in AGN
		"AGN-[NII]-6585.27-Dispersion",
		"AGN-[NII]-6585.27-Flux",
	}
	for _, v := range free {
		_, ok := m.Tie(v)
		assert.False(ok, v)
	}
	assert.Equal([]int{0, 1, 2, 4, 6, 7, 8, 13, 14}, m.Free())
}

func TestUntiedGroupRedshift(t *testing.T) {
	assert := assert.New(t)
	groups := []emission.Group{
		{
			Name: "AGN",
			Species: []emission.Species{
				{Name: "[OIII]", Lines: []emission.Line{
					{Wavelength: 5008.24},
					{Wavelength: 4960.30},
				}},
				{Name: "[NII]", Lines: []emission.Line{
					{Wavelength: 6585.27},
					{Wavelength: 6549.86},
				}},
			},
		},
	}
	spec := newSpectrum(t, testGroups())
	m, names, err := model.BuildEmission(spec, model.OptGroups(groups))
	require.Nil(t, err)
	assert.Len(names, 12)

	_, ok := m.Tie("AGN-[NII]-6585.27-Redshift")
	assert.False(ok)
	_, ok = m.Tie("AGN-[NII]-6585.27-Dispersion")
	assert.False(ok)

	tie, ok := m.Tie("AGN-[NII]-6549.86-Redshift")
	require.True(t, ok)
	assert.Equal(6, tie.Source)
	tie, ok = m.Tie("AGN-[OIII]-4960.3-Redshift")
	require.True(t, ok)
	assert.Equal(0, tie.Source)
	assert.Equal([]int{0, 1, 2, 4, 6, 7, 8, 10}, m.Free())

	nii, _ := m.Index("AGN-[NII]-6585.27-Redshift")
	before := m.Resolved()[nii]
	require.Nil(t, m.SetParam("AGN-[OIII]-5008.24-Redshift", 1.5))
	assert.Equal(before, m.Resolved()[nii])
}

func TestResolvedAllocs(t *testing.T) {
	cont, err := model.BuildContinuum(newSpectrum(t, testGroups()))
	require.Nil(t, err)
	m, err := model.BuildModel(cont, emissionModel(t))
	require.Nil(t, err)

	// position mirror agrees with the tie table after the merge
	ties := m.Ties()
	for _, i := range m.Free() {
		_, ok := ties[m.Keys()[i]]
		assert.False(t, ok)
	}
	assert.Equal(t, m.NParams()-len(ties), len(m.Free()))

	allocs := testing.AllocsPerRun(100, func() { m.Resolved() })
	assert.Equal(t, 1.0, allocs)
}

func TestGroupRedshift(t *testing.T) {
	assert := assert.New(t)
	m := emissionModel(t)
	anchor := "AGN-[OIII]-5008.24-Redshift"
	followers := []string{
		"AGN-[OIII]-4960.3-Redshift",
		"AGN-[NII]-6585.27-Redshift",
		"AGN-[NII]-6549.86-Redshift",
	}

	for _, z := range []float64{0.1, 0.0234, 3.7} {
		require.Nil(t, m.SetParam(anchor, z))
		p := m.Resolved()
		for _, f := range followers {
			idx, _ := m.Index(f)
			assert.Equal(z, p[idx], f)
		}
	}
}

func TestSpeciesDispersion(t *testing.T) {
	assert := assert.New(t)
	m := emissionModel(t)
	tie, ok := m.Tie("AGN-[NII]-6549.86-Dispersion")
	assert.True(ok)
	anchor, _ := m.Index("AGN-[NII]-6585.27-Dispersion")
	assert.Equal(anchor, tie.Source)

	p := m.Params()
	for _, d := range []float64{120, 350.5, 80} {
		p[anchor] = d
		assert.Equal(d, tie.Apply(p))
	}
}

func TestFluxRatios(t *testing.T) {
	assert := assert.New(t)
	groups := []emission.Group{{
		Name: "Iron",
		Species: []emission.Species{{
			Name: "FeII",
			Lines: []emission.Line{
				{Wavelength: 4924.5, RelStrength: emission.Ratio(1)},
				{Wavelength: 5018.4, RelStrength: emission.Ratio(0.5)},
				{Wavelength: 5169.0, RelStrength: emission.Ratio(0.25)},
				{Wavelength: 5197.6},
			},
		}},
	}}
	m, _, err := model.BuildEmission(newSpectrum(t, groups))
	require.Nil(t, err)

	flux := 42.0
	require.Nil(t, m.SetParam("Iron-FeII-4924.5-Flux", flux))
	p := m.Params()

	tie, ok := m.Tie("Iron-FeII-5018.4-Flux")
	assert.True(ok)
	assert.Equal(0.5*flux, tie.Apply(p))

	tie, ok = m.Tie("Iron-FeII-5169-Flux")
	assert.True(ok)
	assert.Equal(0.25*flux, tie.Apply(p))

	_, ok = m.Tie("Iron-FeII-5197.6-Flux")
	assert.False(ok)
}

func TestNullRatioReference(t *testing.T) {
	assert := assert.New(t)
	groups := []emission.Group{{
		Name: "AGN",
		Species: []emission.Species{{
			Name: "[OIII]",
			Lines: []emission.Line{
				{Wavelength: 4960.30},
				{Wavelength: 5008.24, RelStrength: emission.Ratio(3)},
				{Wavelength: 4932.60, RelStrength: emission.Ratio(1)},
			},
		}},
	}}
	m, _, err := model.BuildEmission(newSpectrum(t, groups))
	assert.Nil(err)

	_, ok := m.Tie("AGN-[OIII]-4960.3-Flux")
	assert.False(ok)
	_, ok = m.Tie("AGN-[OIII]-5008.24-Flux")
	assert.False(ok)
	tie, ok := m.Tie("AGN-[OIII]-4932.6-Flux")
	assert.True(ok)
	ref, _ := m.Index("AGN-[OIII]-5008.24-Flux")
	assert.Equal(ref, tie.Source)
	assert.InDelta(1.0/3, tie.Scale, 1e-12)
}

func TestZeroFluxReference(t *testing.T) {
	groups := []emission.Group{{
		Name: "AGN",
		Species: []emission.Species{{
			Name: "[OIII]",
			Lines: []emission.Line{
				{Wavelength: 5008.24, RelStrength: emission.Ratio(0)},
				{Wavelength: 4960.30, RelStrength: emission.Ratio(1)},
			},
		}},
	}}
	_, _, err := model.BuildEmission(newSpectrum(t, groups))
	assert.True(t, model.IsConfigurationError(err))
}

func TestMalformedGroups(t *testing.T) {
	assert := assert.New(t)
	m := emissionModel(t)
	before := m.Ties()

	groups := testGroups()
	groups[1].Species[0].Lines = append(
		groups[1].Species[0].Lines,
		emission.Line{Wavelength: 4932.60, RelStrength: emission.Ratio(0.1)},
	)
	err := model.TieEmission(m, groups)
	assert.NotNil(err)
	assert.True(model.IsConfigurationError(err))
	assert.False(model.IsFactoryError(err))
	assert.Equal(before, m.Ties())

	err = model.TieParams(m, groups)
	assert.True(model.IsConfigurationError(err))
	assert.Equal(before, m.Ties())
}

func TestUnknownFlag(t *testing.T) {
	assert := assert.New(t)
	spec := newSpectrum(t, testGroups())

	_, _, err := model.NewFeature(6564.61, -7, spec)
	assert.True(model.IsFactoryError(err))

	groups := testGroups()
	groups[0].Species[0].Flag = -7
	_, _, err = model.BuildEmission(spec, model.OptGroups(groups))
	assert.True(model.IsFactoryError(err))
	assert.False(model.IsConfigurationError(err))
}

func TestNewFeature(t *testing.T) {
	assert := assert.New(t)
	spec := newSpectrum(t, testGroups())

	tests := []struct {
		flag int
		kind string
	}{
		{0, "SpectralFeature"},
		{3, "SpectralFeature"},
		{-1, "Broad"},
		{-2, "Outflow"},
		{-3, "Lorentzian"},
	}
	for _, v := range tests {
		c, names, err := model.NewFeature(6564.61, v.flag, spec)
		assert.Nil(err)
		assert.Equal(v.kind, c.Name())
		assert.Equal([]string{"Redshift", "Flux", "Dispersion"}, names)
		assert.Len(c.Guess(), len(names))
	}

	_, _, err := model.NewFeature(6564.61, 0, nil)
	assert.True(model.IsConfigurationError(err))
	_, _, err = model.NewFeature(6564.61, 0, &spectrum.Spectrum{})
	assert.True(model.IsConfigurationError(err))
}

func TestBuildContinuum(t *testing.T) {
	assert := assert.New(t)
	groups := testGroups()
	groups = append(groups, emission.Group{
		Name: "Helium",
		Species: []emission.Species{{
			Name:  "HeI",
			Lines: []emission.Line{{Wavelength: 5877.25}},
		}},
	})
	spec := newSpectrum(t, groups)
	require.Len(t, spec.Regions, 3)

	m, err := model.BuildContinuum(spec)
	assert.Nil(err)
	assert.Equal(9, m.NParams())
	for _, k := range m.Keys() {
		n, err := model.ParseParamName(k)
		assert.Nil(err)
		assert.True(n.IsContinuum())
	}

	var free, tied []int
	for i, n := range m.Names() {
		if n.Role != model.RoleRedshift {
			continue
		}
		if _, ok := m.Tie(n.String()); ok {
			tied = append(tied, i)
			continue
		}
		free = append(free, i)
	}
	assert.Equal([]int{0}, free)
	assert.Equal([]int{3, 6}, tied)

	require.Nil(t, m.SetParams(make([]float64, m.NParams())))
	p := m.Params()
	p[0] = 0.123
	require.Nil(t, m.SetParams(p))
	res := m.Resolved()
	for _, i := range tied {
		assert.Equal(0.123, res[i])
	}
}

func TestBuildModel(t *testing.T) {
	assert := assert.New(t)
	spec := newSpectrum(t, testGroups())
	cont, err := model.BuildContinuum(spec)
	require.Nil(t, err)
	em, _, err := model.BuildEmission(spec)
	require.Nil(t, err)

	m, err := model.BuildModel(cont, em)
	assert.Nil(err)
	n := cont.NParams()
	assert.Equal(n+em.NParams(), m.NParams())
	assert.Equal(cont.Params(), m.Params()[:n])
	assert.Equal(em.Params(), m.Params()[n:])
	assert.Len(m.Ties(), len(cont.Ties())+len(em.Ties()))

	tie, ok := m.Tie("Balmer-HI-4862.68-Dispersion")
	assert.True(ok)
	assert.Equal(n+2, tie.Source)

	rows := model.Summary(m)
	assert.Len(rows, m.NParams())
	for _, r := range rows {
		if r.Name != "AGN-[OIII]-4960.3-Flux" {
			continue
		}
		assert.False(r.Free)
		assert.Equal("AGN-[OIII]-5008.24-Flux", r.TiedTo)
		assert.InDelta(0.35, r.Scale, 1e-12)
	}

	// inputs are not changed by merging
	tie, _ = em.Tie("Balmer-HI-4862.68-Dispersion")
	assert.Equal(2, tie.Source)
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)
	spec := newSpectrum(t, testGroups())
	m, err := model.Build(spec)
	require.Nil(t, err)

	p := m.Params()
	for i := range p {
		if i%3 == 1 {
			p[i] = float64(i)
		}
	}
	require.Nil(t, m.SetParams(p))
	require.Nil(t, m.SetParam("AGN-[OIII]-5008.24-Dispersion", 250))

	wav := []float64{4861, 4862.68, 4960, 5008.24, 6549.86, 6565, 6585}
	want := m.Evaluate(wav)

	params := m.Params()
	require.Nil(t, m.SetParams(make([]float64, len(params))))
	require.Nil(t, m.SetParams(params))
	assert.Equal(want, m.Evaluate(wav))

	fresh, err := model.Build(spec)
	require.Nil(t, err)
	require.Nil(t, fresh.SetParams(params))
	assert.Equal(want, fresh.Evaluate(wav))

	err = m.SetParams(params[1:])
	assert.True(model.IsConfigurationError(err))
}

func TestMakeTie(t *testing.T) {
	assert := assert.New(t)
	var ties []model.Tie
	for i := range 3 {
		ties = append(ties, model.MakeScaledTie(i, float64(i+1)))
	}
	p := []float64{10, 20, 30}
	assert.Equal(10.0, ties[0].Apply(p))
	assert.Equal(40.0, ties[1].Apply(p))
	assert.Equal(90.0, ties[2].Apply(p))

	tie := model.MakeTie(2)
	assert.Equal(1.0, tie.Scale)
	assert.Equal(30.0, tie.Apply(p))
}

func TestAddTies(t *testing.T) {
	assert := assert.New(t)
	m := emissionModel(t)
	before := m.Ties()

	tests := []struct {
		msg  string
		ties map[string]model.Tie
	}{
		{"self", map[string]model.Tie{"Balmer-HI-4862.68-Flux": model.MakeTie(4)}},
		{"forward", map[string]model.Tie{"Balmer-HI-4862.68-Flux": model.MakeTie(5)}},
		{"negative", map[string]model.Tie{"Balmer-HI-4862.68-Flux": model.MakeTie(-1)}},
		{"unknown", map[string]model.Tie{"Balmer-HI-1-Flux": model.MakeTie(0)}},
		{"partial", map[string]model.Tie{
			"AGN-[OIII]-5008.24-Flux": model.MakeTie(1),
			"Balmer-HI-4862.68-Flux":  model.MakeTie(5),
		}},
	}
	for _, v := range tests {
		err := m.AddTies(v.ties)
		assert.True(model.IsConfigurationError(err), v.msg)
		assert.Equal(before, m.Ties(), v.msg)
	}

	err := m.AddTies(map[string]model.Tie{
		"Balmer-HI-4862.68-Flux": model.MakeScaledTie(1, 0.3),
	})
	assert.Nil(err)
	assert.Len(m.Ties(), len(before)+1)
}

func TestSumDuplicate(t *testing.T) {
	spec := newSpectrum(t, testGroups())
	m, _, err := model.BuildEmission(spec)
	require.Nil(t, err)
	_, err = model.Sum(m, m)
	assert.True(t, model.IsConfigurationError(err))
}

func TestParseParamName(t *testing.T) {
	assert := assert.New(t)
	n, err := model.ParseParamName("AGN-[OIII]-5008.24-Flux")
	assert.Nil(err)
	assert.Equal(model.ParamName{
		Group: "AGN", Species: "[OIII]", Wavelength: 5008.24, Role: "Flux",
	}, n)
	assert.Equal("AGN-[OIII]-5008.24-Flux", n.String())
	assert.Equal("AGN-[OIII]-5008.24-", n.Prefix())
	assert.False(n.IsContinuum())

	for _, v := range []string{"", "AGN-[OIII]-Flux", "AGN-[OIII]-x-Flux", "a-b-1-c-d"} {
		_, err = model.ParseParamName(v)
		assert.NotNil(err, v)
	}
}
