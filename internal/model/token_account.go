package model

// TokenAccount - счет хранения токенов одного минта.
// OwnerID == nil у счетов под управлением хранилища: списать с них
// может только сам движок.
type TokenAccount struct {
	ID      string
	OwnerID *int
	Mint    string
	Balance uint64
}
