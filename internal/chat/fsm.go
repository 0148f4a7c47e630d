// Package chat turns incoming message text into replies: a command router
// for the day-to-day operations and an explicit state machine for the
// onboarding conversation. It never sees transport types; the HTTP layer
// hands it plain text and sends back whatever it returns.
package chat

import (
	"fmt"
	"strings"

	"financeiro/internal/core"
)

// Step names one onboarding state. The zero value means no conversation
// is in progress.
type Step int

const (
	StepIdle Step = iota
	StepAwaitingProfileKind
	StepAwaitingParticipants
	StepAwaitingNickname
	StepAwaitingIncomes
	StepAwaitingFixedCosts
	StepComplete
)

// Conversation is the full FSM position: the step plus, while collecting
// incomes, which participant is being asked about.
type Conversation struct {
	Step      Step
	incomeIdx int
}

// Active reports whether an onboarding conversation is in progress.
func (c Conversation) Active() bool {
	switch c.Step {
	case StepIdle, StepComplete:
		return false
	}
	return true
}

// Begin starts (or restarts) onboarding. The existing profile is kept
// until a new kind is actually chosen, so an abandoned /start changes
// nothing.
func Begin() (Conversation, string) {
	return Conversation{Step: StepAwaitingProfileKind},
		"Vamos configurar seu perfil! 👋\nVocê usa o bot no modo Solo, Casal ou Família?"
}

// Advance feeds one message into the onboarding machine. It either moves
// to the next step, mutating st along the way, or stays put and re-prompts.
func Advance(conv Conversation, st *core.State, input string) (Conversation, string) {
	input = strings.TrimSpace(input)
	switch conv.Step {
	case StepAwaitingProfileKind:
		return awaitProfileKind(st, input)
	case StepAwaitingParticipants:
		return awaitParticipants(st, input)
	case StepAwaitingNickname:
		return awaitNickname(st, input)
	case StepAwaitingIncomes:
		return awaitIncomes(conv, st, input)
	case StepAwaitingFixedCosts:
		return awaitFixedCosts(st, input)
	}
	return conv, "Não há configuração em andamento. Use /start para começar."
}

func awaitProfileKind(st *core.State, input string) (Conversation, string) {
	kind, err := core.ParseProfileKind(input)
	if err != nil {
		return Conversation{Step: StepAwaitingProfileKind},
			"Perfil inválido. Responda Solo, Casal ou Família."
	}
	// Onboarding replaces the previous profile wholesale.
	*st = core.State{Profile: kind}
	if kind == core.Solo {
		return Conversation{Step: StepAwaitingParticipants}, "Qual é o seu nome?"
	}
	return Conversation{Step: StepAwaitingParticipants},
		"Quais são os nomes? Separe por vírgula, exemplo: Bruno, Camila"
}

func awaitParticipants(st *core.State, input string) (Conversation, string) {
	names, err := core.ParseParticipants(input)
	if err != nil {
		return Conversation{Step: StepAwaitingParticipants},
			"Não entendi os nomes. Envie algo como: Bruno, Camila"
	}
	st.Participants = names
	if st.IsGroup() {
		return Conversation{Step: StepAwaitingNickname},
			"Qual apelido vocês querem dar ao grupo?"
	}
	return Conversation{Step: StepAwaitingIncomes}, askIncome(names[0])
}

func awaitNickname(st *core.State, input string) (Conversation, string) {
	if input == "" {
		return Conversation{Step: StepAwaitingNickname},
			"Preciso de um apelido para o grupo. Qual vai ser?"
	}
	st.Nickname = input
	return Conversation{Step: StepAwaitingIncomes}, askIncome(st.Participants[0])
}

func awaitIncomes(conv Conversation, st *core.State, input string) (Conversation, string) {
	name := st.Participants[conv.incomeIdx]
	if err := st.SetIncome(name, input); err != nil {
		return conv, "Valor inválido. Use números, exemplo: 2500 ou 2500,00"
	}
	next := conv.incomeIdx + 1
	if next < len(st.Participants) {
		return Conversation{Step: StepAwaitingIncomes, incomeIdx: next},
			askIncome(st.Participants[next])
	}
	return Conversation{Step: StepAwaitingFixedCosts},
		"Agora envie seus custos fixos mensais, um por linha (Nome: valor).\n" +
			"Para streaming use: Streaming: Netflix (39,90), Spotify (21,90)"
}

func awaitFixedCosts(st *core.State, input string) (Conversation, string) {
	st.FixedCosts = core.ParseFixedCosts(input)
	return Conversation{Step: StepComplete},
		"Perfil configurado! ✅\n" +
			"Use /registrar Nome Valor Categoria para anotar gastos e /relatorio para o resumo do dia."
}

func askIncome(name string) string {
	return fmt.Sprintf("Qual é a renda mensal de %s? (envie 0 se preferir não informar)", name)
}
