package model

// Коды типов ставок (европейская рулетка, одно зеро)
const (
	BetStraight  uint8 = 0  // одно число
	BetSplit     uint8 = 1  // два числа
	BetCorner    uint8 = 2  // каре 2x2, Numbers[0] - верхний левый
	BetStreet    uint8 = 3  // ряд из трех, Numbers[0] - начало ряда
	BetSixLine   uint8 = 4  // два ряда, Numbers[0] - начало первого
	BetFirstFour uint8 = 5  // 0-1-2-3
	BetRed       uint8 = 6
	BetBlack     uint8 = 7
	BetEven      uint8 = 8
	BetOdd       uint8 = 9
	BetManque    uint8 = 10 // 1-18
	BetPasse     uint8 = 11 // 19-36
	BetColumn    uint8 = 12 // Numbers[0] - колонка 1-3
	BetP12       uint8 = 13 // дюжина 1-12
	BetM12       uint8 = 14 // дюжина 13-24
	BetD12       uint8 = 15 // дюжина 25-36
)

// Bet - одна ставка игрока. Семантика Numbers зависит от BetType.
type Bet struct {
	Amount  uint64   `json:"amount"`
	BetType uint8    `json:"bet_type"`
	Numbers [4]uint8 `json:"numbers"`
}

// PlayerBets - ставки игрока в текущем раунде.
// ClaimedRound - монотонная отметка последнего раунда, по которому игрок
// уже забирал выигрыш (защита от повторной выплаты).
type PlayerBets struct {
	Player       int
	Round        uint64
	Mint         string
	Bets         []Bet
	ClaimedRound uint64
}

// красные сектора колеса
var redNumbers = map[uint8]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// PayoutMultiplier - множитель выплаты по типу ставки.
// Неизвестный тип дает 0.
func PayoutMultiplier(betType uint8) uint64 {
	switch betType {
	case BetStraight:
		return 36
	case BetSplit:
		return 18
	case BetCorner:
		return 9
	case BetStreet:
		return 12
	case BetSixLine:
		return 6
	case BetFirstFour:
		return 9
	case BetRed, BetBlack, BetEven, BetOdd, BetManque, BetPasse:
		return 2
	case BetColumn, BetP12, BetM12, BetD12:
		return 3
	default:
		return 0
	}
}

// IsBetWinner - выиграла ли ставка при выпавшем числе.
// Некорректные комбинации параметров просто никогда не выигрывают.
func IsBetWinner(betType uint8, numbers [4]uint8, winning uint8) bool {
	switch betType {
	case BetStraight:
		return numbers[0] == winning
	case BetSplit:
		return numbers[0] == winning || numbers[1] == winning
	case BetCorner:
		topLeft := numbers[0]
		if topLeft == 0 || topLeft > 34 || topLeft%3 == 0 {
			return false
		}
		return winning == topLeft || winning == topLeft+1 ||
			winning == topLeft+3 || winning == topLeft+4
	case BetStreet:
		start := numbers[0]
		if start == 0 || start > 34 || (start-1)%3 != 0 {
			return false
		}
		return winning >= start && winning < start+3
	case BetSixLine:
		start := numbers[0]
		if start == 0 || start > 31 || (start-1)%3 != 0 {
			return false
		}
		return winning >= start && winning < start+6
	case BetFirstFour:
		return winning <= 3
	case BetRed:
		return redNumbers[winning]
	case BetBlack:
		return winning != 0 && !redNumbers[winning]
	case BetEven:
		return winning != 0 && winning%2 == 0
	case BetOdd:
		return winning%2 == 1
	case BetManque:
		return winning >= 1 && winning <= 18
	case BetPasse:
		return winning >= 19 && winning <= 36
	case BetColumn:
		column := numbers[0]
		if column < 1 || column > 3 {
			return false
		}
		return winning != 0 && winning%3 == column%3
	case BetP12:
		return winning >= 1 && winning <= 12
	case BetM12:
		return winning >= 13 && winning <= 24
	case BetD12:
		return winning >= 25 && winning <= 36
	default:
		return false
	}
}

// ValidateBet - структурная проверка ставки на границе API.
// Ставки с заведомо невыигрышной комбинацией параметров отклоняются сразу,
// чтобы не хранить мусор в списке ставок.
func ValidateBet(b Bet) error {
	if b.Amount == 0 {
		return ErrInvalidBet
	}
	if b.BetType > BetTypeMax {
		return ErrInvalidBet
	}

	switch b.BetType {
	case BetStraight:
		if b.Numbers[0] >= WheelNumbers {
			return ErrInvalidBet
		}
	case BetSplit:
		if b.Numbers[0] >= WheelNumbers || b.Numbers[1] >= WheelNumbers {
			return ErrInvalidBet
		}
	case BetCorner:
		n := b.Numbers[0]
		if n == 0 || n > 34 || n%3 == 0 {
			return ErrInvalidBet
		}
	case BetStreet:
		n := b.Numbers[0]
		if n == 0 || n > 34 || (n-1)%3 != 0 {
			return ErrInvalidBet
		}
	case BetSixLine:
		n := b.Numbers[0]
		if n == 0 || n > 31 || (n-1)%3 != 0 {
			return ErrInvalidBet
		}
	case BetColumn:
		if b.Numbers[0] < 1 || b.Numbers[0] > 3 {
			return ErrInvalidBet
		}
	}

	return nil
}
