package synth

// VendorNames is the pool of display names used by the synthetic data
// sources. Shared with the mock registry providers so generated
// snapshots look like the rest of the dataset.
var VendorNames = []string{
	"Super Steel Traders", "Reliable Logistics Pvt Ltd", "ABC Suppliers & Co",
	"Quick Dispatch Services", "Global Import Export", "Metro Hardware Store",
	"Elite Manufacturing Ltd", "Premium Parts Suppliers", "Swift Cargo Services",
	"National Trading Company", "Golden Enterprises", "Silver Line Distributors",
	"Diamond Tools & Equipment", "Platinum Logistics", "Ruby Traders",
	"Sapphire Solutions Pvt Ltd", "Emerald Exports", "Pearl Industries",
	"Crystal Clear Suppliers", "Mega Wholesale Trading",
}
