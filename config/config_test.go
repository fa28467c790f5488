package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShopOffers(t *testing.T) {
	offers, err := parseShopOffers("2:20,3:25,10:60")
	require.NoError(t, err)
	assert.Equal(t, []ShopOffer{
		{Count: 2, Price: 20},
		{Count: 3, Price: 25},
		{Count: 10, Price: 60},
	}, offers)

	offers, err = parseShopOffers(" 5:50 ")
	require.NoError(t, err)
	assert.Equal(t, []ShopOffer{{Count: 5, Price: 50}}, offers)

	_, err = parseShopOffers("")
	assert.Error(t, err)

	_, err = parseShopOffers("2-20")
	assert.Error(t, err)

	_, err = parseShopOffers("0:20")
	assert.Error(t, err)

	_, err = parseShopOffers("2:-5")
	assert.Error(t, err)
}
