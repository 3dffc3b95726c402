package filters

import "dashboard.GO/model/catalog"

// WarehouseID is the reserved filter that is always offered.
const WarehouseID = "warehouse"

type warehouse struct {
	code string
	name string
}

var warehouses = []warehouse{
	{"D001", "Merkez Depo"},
	{"D002", "İstanbul Anadolu Depo"},
	{"D003", "İstanbul Avrupa Depo"},
	{"D004", "Ankara Depo"},
	{"D005", "İzmir Depo"},
	{"D006", "Bursa Depo"},
	{"D007", "Antalya Depo"},
	{"D008", "Adana Depo"},
	{"D009", "Konya Depo"},
	{"D010", "Gaziantep Depo"},
	{"D011", "Kayseri Depo"},
	{"D012", "Samsun Depo"},
	{"D013", "Trabzon Depo"},
	{"D014", "Eskişehir Depo"},
	{"D015", "Diyarbakır Depo"},
	{"D016", "Mersin Depo"},
	{"D017", "Kocaeli Depo"},
	{"D018", "Denizli Depo"},
	{"D019", "Malatya Depo"},
	{"D020", "Erzurum Depo"},
	{"D021", "Sakarya Depo"},
	{"D022", "Tekirdağ Depo"},
	{"D023", "Muğla Depo"},
	{"D024", "Aydın Depo"},
	{"E001", "E-Ticaret Depo"},
	{"I001", "İade Depo"},
}

// WarehouseValues returns the fixed warehouse list as filter values.
func WarehouseValues() []catalog.FilterValue {
	vals := make([]catalog.FilterValue, 0, len(warehouses))
	for _, w := range warehouses {
		name := w.name
		vals = append(vals, catalog.FilterValue{Value: w.code, ValueName: &name})
	}
	return vals
}

// EnsureWarehouse guarantees a warehouse filter in the returned set. The fixed
// list is appended when the server omits the filter; with override it also
// replaces server supplied values. The input slice is not modified.
func EnsureWarehouse(in []catalog.Filter, override bool) []catalog.Filter {
	out := make([]catalog.Filter, len(in))
	copy(out, in)
	if f := catalog.FindFilter(out, WarehouseID); f != nil {
		if override || len(f.Values) == 0 {
			f.Values = WarehouseValues()
		}
		return out
	}
	return append(out, catalog.Filter{
		ID:     WarehouseID,
		Title:  "Depo",
		Values: WarehouseValues(),
	})
}
