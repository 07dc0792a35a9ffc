package testutil

// Fixed identifiers shared by integration tests and their seed data.
const (
	TestCustomerID       = "00000000-0000-0000-0000-000000000001"
	TestCustomerNoLimit  = "00000000-0000-0000-0000-000000000002"
	TestProductCode      = "J1"
	TestProductWithRules = "J1-RULES"
	TestFeeRuleFeature   = "ojk_max_fee"
)
