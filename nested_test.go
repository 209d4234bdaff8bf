package stepwise_test

import (
	"context"
	"testing"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/testutils"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/form"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customer struct {
	First *string
	Last  *string
}

type order struct {
	Title    *string
	Customer *customer
	Notes    *string
}

func customerForm(t *testing.T, first, last *testutils.Prompter[string]) *form.Form[customer] {
	t.Helper()
	f := form.New[customer]()
	require.NoError(t, form.Bind(f, form.Pointer[customer]("first", func(c *customer) **string { return &c.First }), testutils.Provider[customer](first)))
	require.NoError(t, form.Bind(f, form.Pointer[customer]("last", func(c *customer) **string { return &c.Last }), testutils.Provider[customer](last)))
	return f
}

func orderForm(t *testing.T, title, notes *testutils.Prompter[string], child *form.Form[customer]) *form.Form[order] {
	t.Helper()
	f := form.New[order]()
	if title != nil {
		require.NoError(t, form.Bind(f, form.Pointer[order]("title", func(o *order) **string { return &o.Title }), testutils.Provider[order](title)))
	}
	require.NoError(t, form.Bind(f, form.Pointer[order]("customer", func(o *order) **customer { return &o.Customer }),
		func(ports.View[order]) ports.Prompter[customer] { return stepwise.NewNested[customer](child) }))
	require.NoError(t, form.Bind(f, form.Pointer[order]("notes", func(o *order) **string { return &o.Notes }), testutils.Provider[order](notes)))
	return f
}

func TestNested_ContinuesParentNumbering(t *testing.T) {
	first := testutils.Answers("Ada")
	last := testutils.Answers("Lovelace")
	notes := testutils.Answers("none")

	w := stepwise.New[order](orderForm(t, nil, notes, customerForm(t, first, last)))
	final, err := w.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, final)

	require.NotNil(t, final.Customer)
	assert.Equal(t, "Ada", *final.Customer.First)
	assert.Equal(t, "Lovelace", *final.Customer.Last)
	assert.Equal(t, "none", *final.Notes)

	assert.Equal(t, domain.StepDisplay{Current: 1, Total: 3}, first.LastSteps())
	assert.Equal(t, domain.StepDisplay{Current: 2, Total: 3}, last.LastSteps())
	assert.Equal(t, domain.StepDisplay{Current: 3, Total: 3}, notes.LastSteps(), "the sub-flow consumed two steps")
}

func TestNested_BackLeavesSubFlow(t *testing.T) {
	title := testutils.Answers("Dr", "Prof")
	first := testutils.NewPrompter(domain.Control[string](domain.SignalBack), domain.Answer("Ada"))
	last := testutils.Answers("Lovelace")
	notes := testutils.Answers("none")

	w := stepwise.New[order](orderForm(t, title, notes, customerForm(t, first, last)))
	final, err := w.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, final)

	assert.Equal(t, "Prof", *final.Title)
	assert.Equal(t, "Ada", *final.Customer.First)
	assert.Equal(t, 2, title.Prompts)
	assert.Zero(t, first.DisposeCalls, "the sub-flow did not start at step one")
}

func TestNested_ExitLeavesParent(t *testing.T) {
	title := testutils.Answers("Dr")
	first := testutils.NewPrompter(domain.Control[string](domain.SignalExit))
	notes := testutils.Answers("none")

	w := stepwise.New[order](orderForm(t, title, notes, customerForm(t, first, testutils.Answers("x"))))
	final, err := w.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, final)
	assert.Zero(t, notes.Prompts)
}

func TestNested_ChainsParentEstimator(t *testing.T) {
	f := form.New[customer]()
	require.NoError(t, form.Bind(f, form.Pointer[customer]("first", func(c *customer) **string { return &c.First }),
		testutils.Provider[customer](testutils.Answers("Ada"))))

	n := stepwise.NewNested[customer](f)
	n.Configure(ports.PrompterOptions{
		Cache:     domain.NewStepCache(),
		Estimator: func(any) int { return 4 },
		Steps:     domain.StepDisplay{Current: 3, Total: 7},
	})

	child := n.Child()
	require.NotNil(t, child)
	assert.Equal(t, domain.StepOffset{Current: 2, Total: 6}, child.StepOffset())

	resp, err := n.Prompt(context.Background())
	require.NoError(t, err)
	require.True(t, resp.Valid())
	assert.Equal(t, "Ada", *resp.Value.First)
	assert.Equal(t, 1, n.TotalSteps())

	recent, ok := n.RecentItem()
	assert.True(t, ok)
	assert.Equal(t, "Ada", *recent.First)
}
