package service

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUPILink(t *testing.T) {
	svc := NewUPIService("chickkart@upi", "ChickKart")
	link := svc.Link("chickkart@upi", 485, "CK260829-1a2b3c4d")
	require.True(t, strings.HasPrefix(link, "upi://pay?"))

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "chickkart@upi", q.Get("pa"))
	assert.Equal(t, "ChickKart", q.Get("pn"))
	assert.Equal(t, "485.00", q.Get("am"))
	assert.Equal(t, "INR", q.Get("cu"))
	assert.Equal(t, "Order Payment", q.Get("tn"))
	assert.Equal(t, "CK260829-1a2b3c4d", q.Get("tr"))
}

func TestUPILinksPerApp(t *testing.T) {
	svc := NewUPIService("chickkart@upi", "ChickKart")
	links := svc.Links(395, "CK-1")

	require.Len(t, links, 4)
	for _, key := range []string{"merchant-upi", "paytm", "gpay", "phonepe"} {
		assert.Contains(t, links, key)
	}

	u, err := url.Parse(links["gpay"])
	require.NoError(t, err)
	assert.Equal(t, "gpay@okaxis", u.Query().Get("pa"))
	assert.Equal(t, "395.00", u.Query().Get("am"))
}

func TestUPILinksWithoutMerchantVPA(t *testing.T) {
	svc := NewUPIService("", "")
	links := svc.Links(100, "CK-1")

	assert.NotContains(t, links, "merchant-upi")
	assert.Len(t, links, 3)

	u, err := url.Parse(links["paytm"])
	require.NoError(t, err)
	assert.Equal(t, "ChickKart", u.Query().Get("pn"))
}
