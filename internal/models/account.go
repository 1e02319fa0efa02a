package models

// Account represents a card account. The card number is the lookup key, the
// PIN is the login secret, and the balance is held in the smallest currency
// unit. Number and PIN are immutable after creation.
type Account struct {
	Number  string `db:"number"`
	PIN     string `db:"pin"`
	Balance int64  `db:"balance"`
	ID      int64  `db:"id"`
}
