package booking

import "math"

// ServiceTaxPct é a taxa de serviço fixa aplicada sobre o subtotal.
const ServiceTaxPct = 5.0

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Tax é o valor da taxa de serviço sobre um subtotal.
func Tax(subtotal float64) float64 {
	return Round2(subtotal * ServiceTaxPct / 100)
}

// FinalTotal aplica a taxa de serviço e depois o desconto promocional
// (percentual) sobre o subtotal pós-taxa, arredondando a centavos em cada
// passo para os totais monetários não derivarem.
func FinalTotal(subtotal, discountPct float64) float64 {
	taxed := Round2(subtotal + Tax(subtotal))
	if discountPct <= 0 {
		return taxed
	}
	return Round2(taxed * (100 - discountPct) / 100)
}
