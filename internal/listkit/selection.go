package listkit

// Selection - отмеченные строки текущей страницы.
//
// Любая смена набора строк (SetItems) - это смена "идентичности" списка:
// выбор очищается целиком, даже если пришли те же самые id.
// Не потокобезопасна, синхронизацию делает владелец.
type Selection[ID comparable] struct {
	items      []ID
	index      map[ID]struct{}
	selected   []ID
	generation uint64
}

func NewSelection[ID comparable]() *Selection[ID] {
	return &Selection[ID]{index: make(map[ID]struct{})}
}

// SetItems заменяет текущие строки и сбрасывает выбор.
func (s *Selection[ID]) SetItems(ids []ID) {
	s.items = append([]ID(nil), ids...)
	s.index = make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		s.index[id] = struct{}{}
	}
	s.selected = nil
	s.generation++
}

// SelectOne добавляет id в конец выбора.
// Повторный вызов для того же id добавит дубликат - так было всегда, не исправляем.
// id, которого нет среди текущих строк, игнорируется.
func (s *Selection[ID]) SelectOne(id ID) {
	if _, ok := s.index[id]; !ok {
		return
	}
	s.selected = append(s.selected, id)
}

// DeselectOne удаляет все вхождения id.
func (s *Selection[ID]) DeselectOne(id ID) {
	kept := s.selected[:0]
	for _, sel := range s.selected {
		if sel != id {
			kept = append(kept, sel)
		}
	}
	s.selected = kept
}

func (s *Selection[ID]) SelectAll() {
	s.selected = append([]ID(nil), s.items...)
}

func (s *Selection[ID]) DeselectAll() {
	s.selected = nil
}

func (s *Selection[ID]) Selected() []ID {
	out := make([]ID, len(s.selected))
	copy(out, s.selected)
	return out
}

func (s *Selection[ID]) Items() []ID {
	out := make([]ID, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Selection[ID]) Generation() uint64 { return s.generation }

// IsSelected - есть ли id в выборе.
func (s *Selection[ID]) IsSelected(id ID) bool {
	for _, sel := range s.selected {
		if sel == id {
			return true
		}
	}
	return false
}

type SelectionOp string

const (
	OpSelectOne   SelectionOp = "select_one"
	OpDeselectOne SelectionOp = "deselect_one"
	OpSelectAll   SelectionOp = "select_all"
	OpDeselectAll SelectionOp = "deselect_all"
)

// Apply выполняет операцию по её имени. false - неизвестная операция.
func (s *Selection[ID]) Apply(op SelectionOp, id ID) bool {
	switch op {
	case OpSelectOne:
		s.SelectOne(id)
	case OpDeselectOne:
		s.DeselectOne(id)
	case OpSelectAll:
		s.SelectAll()
	case OpDeselectAll:
		s.DeselectAll()
	default:
		return false
	}
	return true
}

// SelectionSnapshot - сериализуемый слепок для хранения между запросами.
type SelectionSnapshot[ID comparable] struct {
	Generation uint64 `json:"generation"`
	Items      []ID   `json:"items"`
	Selected   []ID   `json:"selected"`
}

func (s *Selection[ID]) Snapshot() SelectionSnapshot[ID] {
	return SelectionSnapshot[ID]{
		Generation: s.generation,
		Items:      s.Items(),
		Selected:   s.Selected(),
	}
}

// RestoreSelection восстанавливает выбор из слепка.
// Выбранные id вне Items отбрасываются.
func RestoreSelection[ID comparable](snap SelectionSnapshot[ID]) *Selection[ID] {
	s := NewSelection[ID]()
	s.items = append([]ID(nil), snap.Items...)
	for _, id := range snap.Items {
		s.index[id] = struct{}{}
	}
	for _, id := range snap.Selected {
		if _, ok := s.index[id]; ok {
			s.selected = append(s.selected, id)
		}
	}
	s.generation = snap.Generation
	return s
}
