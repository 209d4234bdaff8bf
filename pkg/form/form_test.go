package form_test

import (
	"testing"

	"github.com/aretw0/stepwise/internal/testutils"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/form"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type server struct {
	Cloud  *string
	Region *string
	Port   *int
}

func cloud() form.Property[server, string] {
	return form.Pointer[server]("cloud", func(s *server) **string { return &s.Cloud })
}

func region() form.Property[server, string] {
	return form.Pointer[server]("region", func(s *server) **string { return &s.Region })
}

func port() form.Property[server, int] {
	return form.Pointer[server]("port", func(s *server) **int { return &s.Port })
}

func ptr[T any](v T) *T { return &v }

func newServerForm(t *testing.T) *form.Form[server] {
	t.Helper()
	f := form.New[server]()
	require.NoError(t, form.Bind(f, cloud(), testutils.Provider[server](testutils.Answers("aws"))))
	require.NoError(t, form.Bind(f, region(), testutils.Provider[server](testutils.Answers("eu")),
		form.ShowIf(func(s server) bool { return s.Cloud != nil && *s.Cloud == "aws" }),
		form.Default[server]("us-east-1"),
	))
	require.NoError(t, form.Bind(f, port(), nil, form.Default[server](8080)))
	return f
}

func TestForm_Contract(t *testing.T) {
	f := newServerForm(t)
	ports.RunFormContract[server](t, f, server{Cloud: ptr("aws"), Port: ptr(22)})
}

func TestForm_Bind(t *testing.T) {
	f := form.New[server]()
	require.NoError(t, form.Bind(f, cloud(), nil))

	err := form.Bind(f, cloud(), nil)
	assert.ErrorContains(t, err, "already bound")

	err = form.Bind(f, form.Property[server, string]{Key: "broken"}, nil)
	assert.ErrorContains(t, err, "incomplete")

	err = form.Bind(f, region(), nil, form.When[server]("Cloud =="))
	var condErr *form.ConditionError
	assert.ErrorAs(t, err, &condErr)

	assert.Equal(t, []domain.Key{"cloud"}, f.Properties())
}

func TestForm_BindDefaultTypeMismatch(t *testing.T) {
	f := form.New[server]()

	err := form.Bind(f, port(), nil, form.Default[server](8080.0))
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)

	err = form.Bind(f, region(), nil, form.DefaultFunc(func(server) int { return 1 }))
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)

	assert.Empty(t, f.Properties(), "rejected properties are not bound")
	require.NoError(t, form.Bind(f, port(), nil, form.Default[server](8080)))
}

func TestForm_CanShowProperty(t *testing.T) {
	f := newServerForm(t)
	none := domain.NewKeySet()

	assert.True(t, f.CanShowProperty("cloud", server{}, none))
	assert.False(t, f.CanShowProperty("cloud", server{Cloud: ptr("gcp")}, none), "answered properties are not shown")

	assert.False(t, f.CanShowProperty("region", server{}, none))
	assert.False(t, f.CanShowProperty("region", server{Cloud: ptr("gcp")}, none))
	assert.True(t, f.CanShowProperty("region", server{Cloud: ptr("aws")}, none))

	assert.False(t, f.CanShowProperty("port", server{}, none), "properties without a provider are never shown")
	assert.False(t, f.CanShowProperty("missing", server{}, none))
}

func TestForm_RequireAssigned(t *testing.T) {
	f := form.New[server]()
	require.NoError(t, form.Bind(f, cloud(), testutils.Provider[server](testutils.Answers("x"))))
	require.NoError(t, form.Bind(f, region(), testutils.Provider[server](testutils.Answers("y")),
		form.RequireAssigned[server]("cloud"),
	))

	assert.False(t, f.CanShowProperty("region", server{}, domain.NewKeySet()))
	assert.True(t, f.CanShowProperty("region", server{}, domain.NewKeySet("cloud")))
}

func TestForm_ApplyDefaults(t *testing.T) {
	f := newServerForm(t)

	t.Run("fills visible unset properties", func(t *testing.T) {
		out := f.ApplyDefaults(server{Cloud: ptr("aws")}, domain.NewKeySet())
		require.NotNil(t, out.Region)
		assert.Equal(t, "us-east-1", *out.Region)
		require.NotNil(t, out.Port)
		assert.Equal(t, 8080, *out.Port)
	})

	t.Run("skips hidden properties", func(t *testing.T) {
		out := f.ApplyDefaults(server{Cloud: ptr("gcp")}, domain.NewKeySet())
		assert.Nil(t, out.Region)
	})

	t.Run("never overwrites answers or the input", func(t *testing.T) {
		in := server{Cloud: ptr("aws"), Region: ptr("eu-west-1")}
		out := f.ApplyDefaults(in, domain.NewKeySet())
		assert.Equal(t, "eu-west-1", *out.Region)
		assert.Nil(t, in.Port, "input state must not be mutated")
	})
}

func TestForm_LensTypeMismatch(t *testing.T) {
	f := newServerForm(t)
	lens, ok := f.Lens("port")
	require.True(t, ok)

	var s server
	err := lens.Set(&s, "not a number")
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)

	require.NoError(t, lens.Set(&s, 9000))
	v, set := lens.Get(&s)
	assert.True(t, set)
	assert.Equal(t, 9000, v)

	lens.Clear(&s)
	_, set = lens.Get(&s)
	assert.False(t, set)
}

type answers map[string]any

func TestMapPath(t *testing.T) {
	host := form.MapPath[answers, string]("db.host")

	var s answers
	_, ok := host.Get(&s)
	assert.False(t, ok)

	host.Set(&s, "localhost")
	assert.Equal(t, answers{"db": map[string]any{"host": "localhost"}}, s)

	v, ok := host.Get(&s)
	assert.True(t, ok)
	assert.Equal(t, "localhost", v)

	host.Clear(&s)
	_, ok = host.Get(&s)
	assert.False(t, ok)
	assert.Equal(t, answers{}, s, "parents left empty are removed")

	port := form.MapPath[answers, float64]("db.conn.port")
	host.Set(&s, "localhost")
	port.Set(&s, 5432)
	port.Clear(&s)
	assert.Equal(t, answers{"db": map[string]any{"host": "localhost"}}, s, "parents still holding values stay")
}

func TestWhen_MapState(t *testing.T) {
	f := form.New[answers]()
	require.NoError(t, form.Bind(f, form.MapPath[answers, string]("name"), testutils.Provider[answers](testutils.Answers("x"))))
	require.NoError(t, form.Bind(f, form.MapPath[answers, bool]("advanced"), testutils.Provider[answers](testutils.Answers(true)),
		form.When[answers]("name == 'x'"),
	))

	none := domain.NewKeySet()
	assert.False(t, f.CanShowProperty("advanced", answers{}, none), "undefined variables evaluate safely")
	assert.False(t, f.CanShowProperty("advanced", answers{"name": "y"}, none))
	assert.True(t, f.CanShowProperty("advanced", answers{"name": "x"}, none))
}
