// Package endpoints declares every upstream REST endpoint used by the
// dashboard together with the cache tags it provides or invalidates.
//
// The tables are the single place where the coupling between writes and the
// reads they affect is written down. Modules reference these values instead
// of building paths themselves.
package endpoints

import (
	"net/http"

	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

// Tag types.
const (
	SalesUsers      = "SalesUsers"
	Customers       = "Customers"
	Prospects       = "Prospects"
	Products        = "Products"
	Inventory       = "Inventory"
	Containers      = "Containers"
	Orders          = "Orders"
	Payments        = "Payments"
	Dashboard       = "Dashboard"
	SalesOverview   = "SalesOverview"
	Chart           = "Chart"
	ProductSegments = "ProductSegments"
)

// ListID is the fine tag id used for the order list as a whole.
const ListID = "LIST"

// orderRipple is everything computed server-side from order data.
var orderRipple = []rest.Tag{
	rest.Coarse(Orders),
	rest.Coarse(Dashboard),
	rest.Coarse(SalesOverview),
	rest.Coarse(Chart),
	rest.Coarse(Products),
	rest.Coarse(ProductSegments),
}

// orderWrite adds customers to the ripple of order edits: a customer's
// detail embeds its orders and their open balances. Payments only touch the
// paying customer.
var orderWrite = append(append([]rest.Tag{}, orderRipple...), rest.Coarse(Customers))

// ── Auth & users ─────────────────────────────────────────────

var (
	Login = rest.Mutation{Name: "login", Method: http.MethodPost, Path: "/auth/login"}

	// Logout invalidates no tags: the whole cache is reset with the session.
	Logout = rest.Mutation{Name: "logout", Method: http.MethodPost, Path: "/auth/logout"}

	ForgotPassword = rest.Mutation{Name: "forgotPassword", Method: http.MethodPost, Path: "/user/forgot-password"}
	ResetPassword  = rest.Mutation{Name: "resetPassword", Method: http.MethodPost, Path: "/user/reset-password"}

	GetSalesUsers = rest.Query{Name: "getSalesUsers", Path: "/user/", Provides: rest.Static(rest.Coarse(SalesUsers))}

	CreateSalesUser = rest.Mutation{
		Name:        "createSalesUser",
		Method:      http.MethodPost,
		Path:        "/user/",
		Invalidates: rest.Static(rest.Coarse(SalesUsers)),
	}
)

// ── Customers ────────────────────────────────────────────────

var (
	GetCustomers = rest.Query{Name: "getCustomers", Path: "/customer", Provides: rest.Static(rest.Coarse(Customers))}
	GetCustomer  = rest.Query{Name: "getCustomer", Path: "/customer/{id}", Provides: rest.WithID(Customers)}

	AddCustomer = rest.Mutation{
		Name:        "addCustomer",
		Method:      http.MethodPost,
		Path:        "/customer",
		Invalidates: rest.Static(rest.Coarse(Customers)),
	}
	UpdateCustomer = rest.Mutation{
		Name:        "updateCustomer",
		Method:      http.MethodPatch,
		Path:        "/customer/{id}",
		Invalidates: rest.WithID(Customers, rest.Coarse(Customers)),
	}
	DeleteCustomer = rest.Mutation{
		Name:        "deleteCustomer",
		Method:      http.MethodDelete,
		Path:        "/customer/{id}",
		Invalidates: rest.WithID(Customers, rest.Coarse(Customers)),
	}
)

// ── Prospects ────────────────────────────────────────────────

var (
	GetProspects = rest.Query{Name: "getProspects", Path: "/prospect", Provides: rest.Static(rest.Coarse(Prospects))}
	GetProspect  = rest.Query{Name: "getProspect", Path: "/prospect/{id}", Provides: rest.WithID(Prospects)}

	AddProspect = rest.Mutation{
		Name:        "addProspect",
		Method:      http.MethodPost,
		Path:        "/prospect",
		Invalidates: rest.Static(rest.Coarse(Prospects)),
	}
	UpdateProspect = rest.Mutation{
		Name:        "updateProspect",
		Method:      http.MethodPatch,
		Path:        "/prospect/{id}",
		Invalidates: rest.WithID(Prospects, rest.Coarse(Prospects)),
	}
	DeleteProspect = rest.Mutation{
		Name:        "deleteProspect",
		Method:      http.MethodDelete,
		Path:        "/prospect/{id}",
		Invalidates: rest.WithID(Prospects, rest.Coarse(Prospects)),
	}
	ConvertProspect = rest.Mutation{
		Name:        "convertProspect",
		Method:      http.MethodPost,
		Path:        "/prospect/{id}/convert",
		Invalidates: rest.WithID(Prospects, rest.Coarse(Prospects), rest.Coarse(Customers)),
	}
	SendProspectEmail = rest.Mutation{Name: "sendProspectEmail", Method: http.MethodPost, Path: "/prospect/sendEmail/{id}"}
)

// ── Products & inventory ─────────────────────────────────────

var (
	GetProducts = rest.Query{Name: "getProducts", Path: "/product", Provides: rest.Static(rest.Coarse(Products))}

	GetProductsByCategory = rest.Query{
		Name:     "getProductsByCategory",
		Path:     "/product/by-category/{id}",
		Provides: rest.WithID(Products, rest.Coarse(Products)),
	}

	GetInventory = rest.Query{
		Name:     "getInventory",
		Path:     "/product",
		Provides: rest.Static(rest.Coarse(Inventory), rest.Coarse(Products)),
	}
	GetPacketSizes = rest.Query{Name: "getPacketSizes", Path: "/product/packet-sizes", Provides: rest.Static(rest.Coarse(Inventory))}

	AddInventory = rest.Mutation{
		Name:        "addInventory",
		Method:      http.MethodPost,
		Path:        "/product",
		Invalidates: rest.Static(rest.Coarse(Inventory), rest.Coarse(Products)),
	}
	UpdateInventory = rest.Mutation{
		Name:        "updateInventory",
		Method:      http.MethodPatch,
		Path:        "/product/{id}",
		Invalidates: rest.Static(rest.Coarse(Inventory), rest.Coarse(Products)),
	}
	DeleteInventory = rest.Mutation{
		Name:        "deleteInventory",
		Method:      http.MethodDelete,
		Path:        "/product/{id}",
		Invalidates: rest.Static(rest.Coarse(Inventory), rest.Coarse(Products)),
	}
)

// ── Containers ───────────────────────────────────────────────

var containerRipple = rest.Static(rest.Coarse(Containers), rest.Coarse(Products), rest.Coarse(Inventory))

var (
	GetContainers = rest.Query{Name: "getContainers", Path: "/container", Provides: rest.Static(rest.Coarse(Containers))}
	GetContainer  = rest.Query{Name: "getContainer", Path: "/container/{id}", Provides: rest.WithID(Containers, rest.Coarse(Containers))}

	AddContainer    = rest.Mutation{Name: "addContainer", Method: http.MethodPost, Path: "/container", Invalidates: containerRipple}
	UpdateContainer = rest.Mutation{Name: "updateContainer", Method: http.MethodPatch, Path: "/container/{id}", Invalidates: containerRipple}
	DeleteContainer = rest.Mutation{Name: "deleteContainer", Method: http.MethodDelete, Path: "/container/{id}", Invalidates: containerRipple}
	ImportContainer = rest.Mutation{Name: "importContainerExcel", Method: http.MethodPost, Path: "/container/xl", Invalidates: containerRipple}
)

// ── Orders ───────────────────────────────────────────────────

var (
	GetOrders = rest.Query{Name: "getOrders", Path: "/order", Provides: rest.Static(rest.Coarse(Orders))}
	GetOrder  = rest.Query{Name: "getOrder", Path: "/order/{id}", Provides: rest.WithID(Orders)}

	AddOrder = rest.Mutation{
		Name:        "addOrder",
		Method:      http.MethodPost,
		Path:        "/order",
		Invalidates: rest.Static(orderWrite...),
	}
	UpdateOrder = rest.Mutation{
		Name:        "updateOrder",
		Method:      http.MethodPatch,
		Path:        "/order/{id}",
		Invalidates: rest.WithID(Orders, orderWrite...),
	}
	DeleteOrder = rest.Mutation{
		Name:        "deleteOrder",
		Method:      http.MethodDelete,
		Path:        "/order/{id}",
		Invalidates: rest.WithID(Orders, orderWrite...),
	}

	GetProductSegments = rest.Query{
		Name:     "getProductSegments",
		Path:     "/order/getProductSegmentation",
		Provides: rest.Static(rest.Coarse(ProductSegments)),
	}
)

// PDF downloads are never cached.
const (
	OrderInvoicePath  = "/order/orderInvoice/{id}"
	DeliverySheetPath = "/order/deliverySheet/{id}"
	ShipToAddressPath = "/order/{id}/ship-to-address-pdf"
)

// ── Payments ─────────────────────────────────────────────────

var (
	GetPaymentHistory = rest.Query{
		Name:     "getPaymentHistory",
		Path:     "/payment/{id}/customersPayments",
		Provides: rest.WithID(Payments, rest.Coarse(Payments)),
	}

	// InsertPayment takes the paying customer's id as its argument. The path
	// carries no id; the argument only selects the customer tag.
	InsertPayment = rest.Mutation{
		Name:   "insertPayment",
		Method: http.MethodPost,
		Path:   "/payment",
		Invalidates: func(arg rest.Arg) rest.Tags {
			tags := append(rest.Tags{rest.Fine(Orders, ListID)}, orderRipple...)
			tags = append(tags, rest.Coarse(Payments))
			if arg.ID != "" {
				tags = append(tags, rest.Fine(Customers, arg.ID))
			}
			return tags
		},
	}
)

// ── Dashboard ────────────────────────────────────────────────

var (
	GetDashboard     = rest.Query{Name: "getDashboard", Path: "/dashboard/overview", Provides: rest.Static(rest.Coarse(Dashboard))}
	GetSalesOverview = rest.Query{Name: "getSalesOverview", Path: "/dashboard/sales-overview", Provides: rest.Static(rest.Coarse(SalesOverview))}
	GetChart         = rest.Query{Name: "getChart", Path: "/dashboard/chart", Provides: rest.Static(rest.Coarse(Chart))}
)

// Queries lists every cached read, for inspection and tests.
func Queries() []rest.Query {
	return []rest.Query{
		GetSalesUsers,
		GetCustomers, GetCustomer,
		GetProspects, GetProspect,
		GetProducts, GetProductsByCategory, GetInventory, GetPacketSizes,
		GetContainers, GetContainer,
		GetOrders, GetOrder, GetProductSegments,
		GetPaymentHistory,
		GetDashboard, GetSalesOverview, GetChart,
	}
}

// Mutations lists every write.
func Mutations() []rest.Mutation {
	return []rest.Mutation{
		Login, Logout, ForgotPassword, ResetPassword, CreateSalesUser,
		AddCustomer, UpdateCustomer, DeleteCustomer,
		AddProspect, UpdateProspect, DeleteProspect, ConvertProspect, SendProspectEmail,
		AddInventory, UpdateInventory, DeleteInventory,
		AddContainer, UpdateContainer, DeleteContainer, ImportContainer,
		AddOrder, UpdateOrder, DeleteOrder,
		InsertPayment,
	}
}

// Affected returns the queries whose results a successful call of m with arg
// would invalidate, assuming each query were cached under queryArg.
func Affected(m rest.Mutation, arg rest.Arg, queryArg rest.Arg) []rest.Query {
	tags := m.Tags(arg)
	var out []rest.Query
	for _, q := range Queries() {
		if tags.Invalidates(q.Tags(queryArg)) {
			out = append(out, q)
		}
	}
	return out
}
