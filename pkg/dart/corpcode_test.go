package dart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFetch(companies []Company) func(ctx context.Context) ([]Company, error) {
	return func(ctx context.Context) ([]Company, error) {
		return companies, nil
	}
}

func TestRegistryResolveExact(t *testing.T) {
	reg := NewCompanyRegistry(stubFetch([]Company{
		{Code: "00126380", Name: "삼성전자", StockCode: "005930"},
		{Code: "00164742", Name: "현대자동차", StockCode: "005380"},
	}))

	company, found, err := reg.Resolve(context.Background(), "현대자동차")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "00164742", company.Code)
}

func TestRegistryResolveSubstring(t *testing.T) {
	reg := NewCompanyRegistry(stubFetch([]Company{
		{Code: "00126380", Name: "삼성전자", StockCode: "005930"},
		{Code: "00258801", Name: "삼성전자서비스", StockCode: ""},
	}))

	// No exact match for the shortened name, substring picks the first entry.
	company, found, err := reg.Resolve(context.Background(), "삼성")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "00126380", company.Code)
}

func TestRegistryResolveExactBeatsSubstring(t *testing.T) {
	reg := NewCompanyRegistry(stubFetch([]Company{
		{Code: "00258801", Name: "삼성전자서비스", StockCode: ""},
		{Code: "00126380", Name: "삼성전자", StockCode: "005930"},
	}))

	company, found, err := reg.Resolve(context.Background(), "삼성전자")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "00126380", company.Code)
}

func TestRegistryResolveNotFound(t *testing.T) {
	reg := NewCompanyRegistry(stubFetch([]Company{
		{Code: "00126380", Name: "삼성전자", StockCode: "005930"},
	}))

	_, found, err := reg.Resolve(context.Background(), "존재하지않는회사")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRegistryFetchesOnce(t *testing.T) {
	calls := 0
	reg := NewCompanyRegistry(func(ctx context.Context) ([]Company, error) {
		calls++
		return []Company{{Code: "00126380", Name: "삼성전자"}}, nil
	})

	for i := 0; i < 3; i++ {
		_, _, err := reg.Resolve(context.Background(), "삼성전자")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}

func TestRegistryFetchError(t *testing.T) {
	reg := NewCompanyRegistry(func(ctx context.Context) ([]Company, error) {
		return nil, errors.New("network down")
	})

	_, _, err := reg.Resolve(context.Background(), "삼성전자")
	require.Error(t, err)
}
