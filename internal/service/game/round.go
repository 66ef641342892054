package game

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"roulette_backend/internal/event"
	"roulette_backend/internal/model"
	"roulette_backend/pkg/safemath"
)

// InitializeSession - создает игровую сессию. Вызвавший становится
// авторитетом сессии. Повторный вызов падает с ErrAlreadyInitialized.
func (s *serv) InitializeSession(ctx context.Context, authority int) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		session := &model.GameSession{
			RoundStatus: model.RoundNotStarted,
			Authority:   authority,
		}
		return s.gameRepo.CreateSession(txCtx, session)
	})
}

// StartNewRound - открывает прием ставок нового раунда.
// Разрешено только из NotStarted или Completed.
func (s *serv) StartNewRound(ctx context.Context, starter int) (*model.GameSession, error) {
	var result *model.GameSession

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		session, err := s.gameRepo.GetSessionForUpdate(txCtx)
		if err != nil {
			return err
		}
		if err := s.requireInitiator(session, starter); err != nil {
			return err
		}

		if session.RoundStatus != model.RoundNotStarted && session.RoundStatus != model.RoundCompleted {
			return model.ErrRoundInProgress
		}

		now := s.clock.Now().Unix()

		// Пауза между розыгрышем и следующим раундом
		if session.RoundStatus == model.RoundCompleted {
			minPause := int64(s.cfg.MinStartNewRoundDuration().Seconds())
			if now < session.GetRandomTime+minPause {
				return model.ErrTooEarlyToStartNewRound
			}
		}

		nextRound, ok := safemath.Add(session.CurrentRound, 1)
		if !ok {
			// счетчик раундов исчерпан, сессия больше не пригодна
			return model.ErrArithmeticOverflow
		}

		session.CurrentRound = nextRound
		session.RoundStartTime = now
		session.RoundStatus = model.RoundAcceptingBets
		session.WinningNumber = nil
		session.BetsClosedTime = 0
		session.GetRandomTime = 0
		session.LastBettor = nil

		if err := s.gameRepo.UpdateSession(txCtx, session); err != nil {
			return err
		}

		s.emitter.Emit(event.RoundStarted{
			Round:     session.CurrentRound,
			Starter:   starter,
			StartTime: now,
		})

		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CloseBets - закрывает прием ставок. Требует хотя бы одну ставку в раунде
// и истекшую минимальную длительность раунда.
func (s *serv) CloseBets(ctx context.Context, closer int) (*model.GameSession, error) {
	var result *model.GameSession

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		session, err := s.gameRepo.GetSessionForUpdate(txCtx)
		if err != nil {
			return err
		}
		if err := s.requireInitiator(session, closer); err != nil {
			return err
		}

		if session.RoundStatus != model.RoundAcceptingBets {
			return model.ErrBetsNotAccepted
		}
		if session.LastBettor == nil {
			return model.ErrCannotCloseBetsWithoutBets
		}

		now := s.clock.Now().Unix()
		minDuration := int64(s.cfg.MinRoundDuration().Seconds())
		if now < session.RoundStartTime+minDuration {
			return model.ErrTooEarlyToClose
		}

		session.RoundStatus = model.RoundBetsClosed
		session.BetsClosedTime = now

		if err := s.gameRepo.UpdateSession(txCtx, session); err != nil {
			return err
		}

		s.emitter.Emit(event.BetsClosed{
			Round:     session.CurrentRound,
			Closer:    closer,
			CloseTime: now,
		})

		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetRandom - детерминированно выводит выигрышное число из последнего
// беттора, времени и слота, завершает раунд.
// Источник случайности слабый и манипулируем тем, кто контролирует
// последнюю ставку: см. комментарий к winningNumber.
func (s *serv) GetRandom(ctx context.Context, initiator int) (*model.GameSession, error) {
	var result *model.GameSession

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		session, err := s.gameRepo.GetSessionForUpdate(txCtx)
		if err != nil {
			return err
		}
		if err := s.requireInitiator(session, initiator); err != nil {
			return err
		}

		if session.RoundStatus != model.RoundBetsClosed {
			return model.ErrRandomBeforeClosing
		}
		if session.LastBettor == nil {
			return model.ErrNoBetsPlacedInRound
		}

		now := s.clock.Now().Unix()
		minPause := int64(s.cfg.MinBetsClosedDuration().Seconds())
		if now < session.BetsClosedTime+minPause {
			return model.ErrTooEarlyToGetRandom
		}

		slot := s.clock.Slot()
		digest, prefix, winning := winningNumber(*session.LastBettor, now, slot)

		session.WinningNumber = &winning
		session.RoundStatus = model.RoundCompleted
		session.LastCompletedRound = session.CurrentRound
		session.GetRandomTime = now

		if err := s.gameRepo.UpdateSession(txCtx, session); err != nil {
			return err
		}

		s.emitter.Emit(event.RandomGenerated{
			Round:          session.CurrentRound,
			Initiator:      initiator,
			WinningNumber:  winning,
			GenerationTime: now,
			Slot:           slot,
			LastBettor:     *session.LastBettor,
			HashResult:     digest,
			HashPrefix:     prefix,
		})

		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SessionState - текущее состояние сессии без блокировок
func (s *serv) SessionState(ctx context.Context) (*model.GameSession, error) {
	return s.gameRepo.GetSession(ctx)
}

// requireInitiator - при включенном admin_only операции цикла
// доступны только авторитету сессии
func (s *serv) requireInitiator(session *model.GameSession, caller int) error {
	if s.cfg.AdminOnly() && caller != session.Authority {
		return model.ErrAdminOnly
	}
	return nil
}

// winningNumber - sha256(lastBettor || now || slot), младшие 8 байт
// little-endian как uint64, по модулю 37
func winningNumber(lastBettor int, now int64, slot uint64) ([32]byte, uint64, uint8) {
	var input [24]byte
	binary.LittleEndian.PutUint64(input[0:8], uint64(lastBettor))
	binary.LittleEndian.PutUint64(input[8:16], uint64(now))
	binary.LittleEndian.PutUint64(input[16:24], slot)

	digest := sha256.Sum256(input[:])
	prefix := binary.LittleEndian.Uint64(digest[0:8])

	return digest, prefix, uint8(prefix % uint64(model.WheelNumbers))
}
