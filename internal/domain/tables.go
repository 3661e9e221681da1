package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Catalog
	&Supplier{},
	&Product{},
	// Sales
	&Customer{},
	&Order{},
	&OrderItem{},
	// Replenishment
	&Purchase{},
	&PurchaseItem{},
}
