package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

func names(qs []rest.Query) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Name
	}
	return out
}

func TestUpdateOrderInvalidates(t *testing.T) {
	tags := UpdateOrder.Tags(rest.ID("o1"))
	for _, typ := range []string{Orders, Dashboard, SalesOverview, Chart, Products, ProductSegments} {
		assert.True(t, tags.Contains(rest.Coarse(typ)), typ)
	}
	assert.True(t, tags.Contains(rest.Fine(Orders, "o1")))
	assert.True(t, tags.Invalidates(GetCustomer.Tags(rest.ID("c1"))))
}

func TestOrderWritesRefreshCustomerOrders(t *testing.T) {
	for _, m := range []rest.Mutation{AddOrder, UpdateOrder, DeleteOrder} {
		affected := names(Affected(m, rest.ID("o1"), rest.ID("c1")))
		assert.Contains(t, affected, "getCustomer", m.Name)
	}
}

func TestUpdateOrderAffectsDashboardViews(t *testing.T) {
	affected := names(Affected(UpdateOrder, rest.ID("o1"), rest.ID("o2")))
	assert.ElementsMatch(t, []string{
		"getProducts", "getProductsByCategory", "getInventory",
		"getOrders", "getOrder", "getProductSegments",
		"getDashboard", "getSalesOverview", "getChart",
		"getCustomers", "getCustomer",
	}, affected)
}

func TestInventoryMutationsDoNotTouchOrders(t *testing.T) {
	for _, m := range []rest.Mutation{AddInventory, UpdateInventory, DeleteInventory} {
		affected := names(Affected(m, rest.ID("p1"), rest.NoArg))
		assert.NotContains(t, affected, "getOrders", m.Name)
		assert.Contains(t, affected, "getInventory", m.Name)
		assert.Contains(t, affected, "getPacketSizes", m.Name)
	}
}

func TestContainerMutationsRippleIntoStock(t *testing.T) {
	affected := names(Affected(ImportContainer, rest.NoArg, rest.NoArg))
	assert.Subset(t, affected, []string{"getContainers", "getContainer", "getProducts", "getInventory"})
}

func TestInsertPaymentTags(t *testing.T) {
	tags := InsertPayment.Tags(rest.ID("store-9"))
	assert.True(t, tags.Contains(rest.Fine(Orders, ListID)))
	assert.True(t, tags.Contains(rest.Fine(Customers, "store-9")))
	assert.True(t, tags.Contains(rest.Coarse(Payments)))
	assert.True(t, tags.Contains(rest.Coarse(Dashboard)))

	// A customer detail other than the payer stays cached.
	assert.False(t, tags.Invalidates(GetCustomer.Tags(rest.ID("store-1"))))
	assert.True(t, tags.Invalidates(GetCustomer.Tags(rest.ID("store-9"))))

	assert.False(t, InsertPayment.Tags(rest.NoArg).Contains(rest.Fine(Customers, "")))
}

func TestConvertProspectRefreshesCustomers(t *testing.T) {
	affected := names(Affected(ConvertProspect, rest.ID("p1"), rest.ID("p1")))
	assert.ElementsMatch(t, []string{"getCustomers", "getCustomer", "getProspects", "getProspect"}, affected)
}

func TestUpdateCustomerIsScoped(t *testing.T) {
	tags := UpdateCustomer.Tags(rest.ID("c1"))
	assert.True(t, tags.Invalidates(GetCustomers.Tags(rest.NoArg)))
	assert.True(t, tags.Invalidates(GetCustomer.Tags(rest.ID("c1"))))
}

func TestTableIsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, q := range Queries() {
		assert.False(t, seen[q.Name], "duplicate %s", q.Name)
		seen[q.Name] = true
		assert.NotEmpty(t, q.Tags(rest.ID("x")), q.Name)
	}
	for _, m := range Mutations() {
		assert.False(t, seen[m.Name], "duplicate %s", m.Name)
		seen[m.Name] = true
		assert.Contains(t, []string{http.MethodPost, http.MethodPatch, http.MethodDelete}, m.Method, m.Name)
	}
}
