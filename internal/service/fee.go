package service

import "btc_wallet/internal/domain"

// External transfers pay 15/1000 (1.5%) of the amount, rounded up to a whole satoshi.
const (
	ExternalFeeNum = 15
	ExternalFeeDen = 1000
)

// ExternalFeeSat returns the smallest fee f with f*ExternalFeeDen >= amountSat*ExternalFeeNum.
// Splitting amountSat into whole and partial thousands keeps the product from overflowing.
func ExternalFeeSat(amountSat int64) int64 {
	whole, rest := amountSat/ExternalFeeDen, amountSat%ExternalFeeDen
	return whole*ExternalFeeNum + ceilDiv(rest*ExternalFeeNum, ExternalFeeDen)
}

// TransferFee is zero between wallets of the same owner and the external fee otherwise.
func TransferFee(from, to domain.Wallet, amountSat int64) int64 {
	if from.UserID == to.UserID {
		return 0
	}
	return ExternalFeeSat(amountSat)
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
