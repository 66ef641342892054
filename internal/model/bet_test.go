package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayoutMultiplier(t *testing.T) {
	cases := []struct {
		betType uint8
		want    uint64
	}{
		{BetStraight, 36},
		{BetSplit, 18},
		{BetCorner, 9},
		{BetStreet, 12},
		{BetSixLine, 6},
		{BetFirstFour, 9},
		{BetRed, 2},
		{BetBlack, 2},
		{BetEven, 2},
		{BetOdd, 2},
		{BetManque, 2},
		{BetPasse, 2},
		{BetColumn, 3},
		{BetP12, 3},
		{BetM12, 3},
		{BetD12, 3},
		{200, 0},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, PayoutMultiplier(c.betType), "bet type %d", c.betType)
	}
}

func TestIsBetWinner_Straight(t *testing.T) {
	assert.True(t, IsBetWinner(BetStraight, [4]uint8{17}, 17))
	assert.False(t, IsBetWinner(BetStraight, [4]uint8{17}, 16))
	assert.True(t, IsBetWinner(BetStraight, [4]uint8{0}, 0))
}

func TestIsBetWinner_Split(t *testing.T) {
	assert.True(t, IsBetWinner(BetSplit, [4]uint8{8, 11}, 8))
	assert.True(t, IsBetWinner(BetSplit, [4]uint8{8, 11}, 11))
	assert.False(t, IsBetWinner(BetSplit, [4]uint8{8, 11}, 9))
}

func TestIsBetWinner_Corner(t *testing.T) {
	// каре 13-14-16-17
	for _, n := range []uint8{13, 14, 16, 17} {
		assert.True(t, IsBetWinner(BetCorner, [4]uint8{13}, n), "number %d", n)
	}
	assert.False(t, IsBetWinner(BetCorner, [4]uint8{13}, 15))

	// кривые якоря никогда не выигрывают
	assert.False(t, IsBetWinner(BetCorner, [4]uint8{0}, 1))
	assert.False(t, IsBetWinner(BetCorner, [4]uint8{3}, 3))  // кратен трем
	assert.False(t, IsBetWinner(BetCorner, [4]uint8{35}, 35)) // за границей сетки
}

func TestIsBetWinner_Street(t *testing.T) {
	for _, n := range []uint8{7, 8, 9} {
		assert.True(t, IsBetWinner(BetStreet, [4]uint8{7}, n), "number %d", n)
	}
	assert.False(t, IsBetWinner(BetStreet, [4]uint8{7}, 10))
	// якорь не в начале ряда
	assert.False(t, IsBetWinner(BetStreet, [4]uint8{8}, 8))
}

func TestIsBetWinner_SixLine(t *testing.T) {
	for _, n := range []uint8{10, 11, 12, 13, 14, 15} {
		assert.True(t, IsBetWinner(BetSixLine, [4]uint8{10}, n), "number %d", n)
	}
	assert.False(t, IsBetWinner(BetSixLine, [4]uint8{10}, 16))
	// последний допустимый старт двойного ряда
	assert.True(t, IsBetWinner(BetSixLine, [4]uint8{31}, 36))
	assert.False(t, IsBetWinner(BetSixLine, [4]uint8{34}, 34))
}

func TestIsBetWinner_FirstFour(t *testing.T) {
	for _, n := range []uint8{0, 1, 2, 3} {
		assert.True(t, IsBetWinner(BetFirstFour, [4]uint8{}, n), "number %d", n)
	}
	assert.False(t, IsBetWinner(BetFirstFour, [4]uint8{}, 4))
}

func TestIsBetWinner_Colors(t *testing.T) {
	// зеро не красное и не черное
	assert.False(t, IsBetWinner(BetRed, [4]uint8{}, 0))
	assert.False(t, IsBetWinner(BetBlack, [4]uint8{}, 0))

	assert.True(t, IsBetWinner(BetRed, [4]uint8{}, 32))
	assert.False(t, IsBetWinner(BetRed, [4]uint8{}, 26))
	assert.True(t, IsBetWinner(BetBlack, [4]uint8{}, 26))
	assert.False(t, IsBetWinner(BetBlack, [4]uint8{}, 32))
}

func TestIsBetWinner_EvenOdd(t *testing.T) {
	// зеро не считается четным
	assert.False(t, IsBetWinner(BetEven, [4]uint8{}, 0))
	assert.False(t, IsBetWinner(BetOdd, [4]uint8{}, 0))

	assert.True(t, IsBetWinner(BetEven, [4]uint8{}, 18))
	assert.True(t, IsBetWinner(BetOdd, [4]uint8{}, 19))
}

func TestIsBetWinner_ManquePasse(t *testing.T) {
	assert.True(t, IsBetWinner(BetManque, [4]uint8{}, 18))
	assert.False(t, IsBetWinner(BetManque, [4]uint8{}, 19))
	assert.False(t, IsBetWinner(BetManque, [4]uint8{}, 0))

	assert.True(t, IsBetWinner(BetPasse, [4]uint8{}, 19))
	assert.False(t, IsBetWinner(BetPasse, [4]uint8{}, 18))
}

func TestIsBetWinner_Column(t *testing.T) {
	// первая колонка: 1, 4, ..., 34
	assert.True(t, IsBetWinner(BetColumn, [4]uint8{1}, 1))
	assert.True(t, IsBetWinner(BetColumn, [4]uint8{1}, 34))
	assert.False(t, IsBetWinner(BetColumn, [4]uint8{1}, 2))

	// третья колонка: кратные трем
	assert.True(t, IsBetWinner(BetColumn, [4]uint8{3}, 36))
	assert.False(t, IsBetWinner(BetColumn, [4]uint8{3}, 0))

	// колонка вне 1-3 никогда не выигрывает
	assert.False(t, IsBetWinner(BetColumn, [4]uint8{0}, 1))
	assert.False(t, IsBetWinner(BetColumn, [4]uint8{4}, 1))
}

func TestIsBetWinner_Dozens(t *testing.T) {
	assert.True(t, IsBetWinner(BetP12, [4]uint8{}, 12))
	assert.False(t, IsBetWinner(BetP12, [4]uint8{}, 13))
	assert.False(t, IsBetWinner(BetP12, [4]uint8{}, 0))

	assert.True(t, IsBetWinner(BetM12, [4]uint8{}, 13))
	assert.True(t, IsBetWinner(BetM12, [4]uint8{}, 24))
	assert.False(t, IsBetWinner(BetM12, [4]uint8{}, 25))

	assert.True(t, IsBetWinner(BetD12, [4]uint8{}, 25))
	assert.True(t, IsBetWinner(BetD12, [4]uint8{}, 36))
}

func TestValidateBet(t *testing.T) {
	require.NoError(t, ValidateBet(Bet{Amount: 10, BetType: BetStraight, Numbers: [4]uint8{17}}))
	require.NoError(t, ValidateBet(Bet{Amount: 10, BetType: BetRed}))

	cases := []struct {
		name string
		bet  Bet
	}{
		{"zero amount", Bet{Amount: 0, BetType: BetStraight, Numbers: [4]uint8{17}}},
		{"unknown type", Bet{Amount: 10, BetType: 16}},
		{"straight out of range", Bet{Amount: 10, BetType: BetStraight, Numbers: [4]uint8{37}}},
		{"split out of range", Bet{Amount: 10, BetType: BetSplit, Numbers: [4]uint8{1, 37}}},
		{"corner anchor zero", Bet{Amount: 10, BetType: BetCorner, Numbers: [4]uint8{0}}},
		{"corner anchor rightmost column", Bet{Amount: 10, BetType: BetCorner, Numbers: [4]uint8{6}}},
		{"street anchor mid row", Bet{Amount: 10, BetType: BetStreet, Numbers: [4]uint8{2}}},
		{"sixline anchor too high", Bet{Amount: 10, BetType: BetSixLine, Numbers: [4]uint8{34}}},
		{"column out of range", Bet{Amount: 10, BetType: BetColumn, Numbers: [4]uint8{4}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateBet(c.bet), ErrInvalidBet)
		})
	}
}
