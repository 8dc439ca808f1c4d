package main

// 空気の比熱, J/kg K
func get_c_a() float64 {
	return 1005.0
}

// 乾き空気の気体定数, J/kg K
func get_r_da() float64 {
	return 287.055
}

// 水蒸気の気体定数, J/kg K
func get_r_v() float64 {
	return 461.5
}

// 水の蒸発潜熱（0℃基準）, J/kg
func get_l_wtr_ref() float64 {
	return 2501000.0
}

// 絶対零度, degree C
func get_theta_zero() float64 {
	return -273.15
}

// ゼロ割防止のための微小量
func get_eps() float64 {
	return 1.0e-9
}
