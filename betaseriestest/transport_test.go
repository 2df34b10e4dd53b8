package betaseriestest_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/betaseries/betaseries"
	"github.com/s0up4200/betaseries/betaseriestest"
)

func TestTransportRecordsAndReplies(t *testing.T) {
	tr := betaseriestest.NewTransport(nil)
	c := betaseries.New("key", betaseries.WithTransport(tr))
	ctx := context.Background()

	_, err := c.MembersIsActive(ctx, "first")
	require.NoError(t, err)
	_, err = c.MembersDestroy(ctx, "second")
	require.NoError(t, err)

	reqs := tr.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, http.MethodPost, reqs[1].Method)
	assert.Equal(t, "second", reqs[1].Body.Get("token"))

	tr.Handle(betaseriestest.JSON(http.StatusBadRequest, betaseriestest.ErrorPayload(2001, "Invalid token")))
	_, err = c.MembersIsActive(ctx, "third")
	assert.True(t, betaseries.IsUserError(err))
	assert.Equal(t, 3, tr.Count())

	tr.Reset()
	assert.Zero(t, tr.Count())
	assert.Empty(t, tr.Requests())
	assert.Nil(t, tr.Last())
}

func TestTransportCanceledContext(t *testing.T) {
	tr := betaseriestest.NewTransport(nil)
	c := betaseries.New("key", betaseries.WithTransport(tr))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.MembersIsActive(ctx, "abc")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, tr.Count())
}
