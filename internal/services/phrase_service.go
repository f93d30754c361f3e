package services

import (
	"math/rand"
	"sync"
	"time"

	"production-board/pkg/utils"
)

var motivationalPhrases = []string{
	"A qualidade do nosso trabalho hoje é a garantia do nosso sucesso amanhã.",
	"O único lugar onde o sucesso vem antes do trabalho é no dicionário.",
	"Grandes coisas em negócios nunca são feitas por uma pessoa. São feitas por uma equipe.",
	"A persistência realiza o impossível.",
	"Foco, força e fé: os três pilares para um dia produtivo.",
	"A perfeição não é alcançável, mas se buscarmos a perfeição, podemos alcançar a excelência.",
	"O talento vence jogos, mas o trabalho em equipe ganha campeonatos.",
	"Não observe o relógio; faça o que ele faz. Continue em frente.",
	"A disciplina é a ponte entre metas e realizações.",
	"Sua dedicação de hoje está construindo a reputação de amanhã.",
}

type PhraseServiceInterface interface {
	// PhraseFor возвращает фразу дня; новая выбирается только при смене календарной даты.
	PhraseFor(now time.Time) string
}

type PhraseService struct {
	mu       sync.Mutex
	phrases  []string
	pick     func(n int) int
	lastDate time.Time
	current  string
}

// NewPhraseService. pick(n) выбирает индекс в [0, n); nil - math/rand.
func NewPhraseService(phrases []string, pick func(n int) int) PhraseServiceInterface {
	if len(phrases) == 0 {
		phrases = motivationalPhrases
	}
	if pick == nil {
		pick = rand.Intn
	}
	return &PhraseService{phrases: phrases, pick: pick}
}

func (s *PhraseService) PhraseFor(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" || !utils.SameDay(s.lastDate, now) {
		s.current = s.phrases[s.pick(len(s.phrases))]
		s.lastDate = now
	}
	return s.current
}
