package state

import (
	"sync"
	"time"
)

// Manager держит диалоги пользователей в памяти процесса.
// Незавершённый диалог забывается через ttl
type Manager struct {
	mu      sync.RWMutex
	dialogs map[int64]Dialog // telegramID -> Dialog
	ttl     time.Duration
	now     func() time.Time
}

// NewManager создаёт новый менеджер состояний
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		dialogs: make(map[int64]Dialog),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get возвращает активный диалог пользователя
func (sm *Manager) Get(telegramID int64) (Dialog, bool) {
	sm.mu.RLock()
	dialog, exists := sm.dialogs[telegramID]
	sm.mu.RUnlock()

	if !exists {
		return Dialog{}, false
	}

	if sm.now().Sub(dialog.UpdatedAt) > sm.ttl {
		sm.Clear(telegramID)
		return Dialog{}, false
	}

	return dialog, true
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	dialog, ok := sm.Get(telegramID)
	if !ok {
		return StateNone
	}
	return dialog.State
}

// Set сохраняет диалог. StateNone удаляет запись
func (sm *Manager) Set(telegramID int64, dialog Dialog) {
	if dialog.State == StateNone {
		sm.Clear(telegramID)
		return
	}

	dialog.UpdatedAt = sm.now()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.dialogs[telegramID] = dialog
}

// Clear очищает состояние и данные пользователя
func (sm *Manager) Clear(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.dialogs, telegramID)
}
