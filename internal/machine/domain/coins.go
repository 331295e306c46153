package domain

import "fmt"

// Coin is one accepted denomination, in cents.
type Coin int

const (
	CoinFive    Coin = 5
	CoinTen     Coin = 10
	CoinTwenty  Coin = 20
	CoinFifty   Coin = 50
	CoinHundred Coin = 100
)

// Denominations holds every accepted coin in descending order.
var Denominations = []Coin{CoinHundred, CoinFifty, CoinTwenty, CoinTen, CoinFive}

// Change maps a denomination to how many of that coin are returned.
type Change map[Coin]int

func ValidateCoin(rawValue int) (Coin, error) {
	for _, coin := range Denominations {
		if int(coin) == rawValue {
			return coin, nil
		}
	}

	return 0, &InvalidCoinError{Msg: fmt.Sprintf("invalid coin value: %d, accepted values: 5, 10, 20, 50, 100", rawValue)}
}

// MakeChange decomposes amount into the minimal multiset of coins,
// greedily from the largest denomination down. Amounts handled by the
// engine are always non-negative multiples of 5, so the remainder
// always reduces to zero.
func MakeChange(amount int) Change {
	change := make(Change)

	for _, denomination := range Denominations {
		if count := amount / int(denomination); count > 0 {
			change[denomination] = count
			amount -= count * int(denomination)
		}
	}

	return change
}
