// Zap payment related types
package types

// ZapAmounts is the set of sat denominations a review zap may carry
type ZapAmounts []int64

// DefaultZapAmounts are the only amounts accepted unless configured otherwise
var DefaultZapAmounts = ZapAmounts{86, 420}

// Contains reports whether amount is exactly one of the allowed denominations
func (z ZapAmounts) Contains(amount int64) bool {
	for _, allowed := range z {
		if allowed == amount {
			return true
		}
	}
	return false
}
