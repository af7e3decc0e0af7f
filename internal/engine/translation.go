package engine

import "github.com/abhisek/lingo/internal/content"

// wordSelection is the word-bank answering shared by translation and
// listening exercises.
type wordSelection struct {
	base
	prompt  content.Prompt
	answers []string
	bank    *WordBank
}

func (w *wordSelection) bindWords(prompt content.Prompt, answers, words []string) {
	w.prompt = prompt
	w.answers = answers
	w.bank = NewWordBank(words)
	w.bank.Reset(w.env.Rand)
}

// Prompt returns the text shown above the exercise.
func (w *wordSelection) Prompt() content.Prompt { return w.prompt }

// Pick moves the available word at pos into the answer.
func (w *wordSelection) Pick(pos int) error {
	if err := w.acceptingInput(); err != nil {
		return err
	}
	word, err := w.bank.Pick(pos)
	if err != nil {
		return err
	}
	w.publish(EventSelectionChanged, word)
	return nil
}

// PickWord moves the first available occurrence of word into the answer.
func (w *wordSelection) PickWord(word string) error {
	if err := w.acceptingInput(); err != nil {
		return err
	}
	if err := w.bank.PickWord(word); err != nil {
		return err
	}
	w.publish(EventSelectionChanged, word)
	return nil
}

// Unpick returns the selected word at pos to the bank.
func (w *wordSelection) Unpick(pos int) error {
	if err := w.acceptingInput(); err != nil {
		return err
	}
	word, err := w.bank.Unpick(pos)
	if err != nil {
		return err
	}
	w.publish(EventSelectionChanged, word)
	return nil
}

// Selected returns the picked words in order.
func (w *wordSelection) Selected() []string {
	if w.bank == nil {
		return nil
	}
	return w.bank.Selected()
}

// Available returns the unpicked words in display order.
func (w *wordSelection) Available() []string {
	if w.bank == nil {
		return nil
	}
	return w.bank.Available()
}

// SubmitWords checks words as the answer, independent of the bank.
func (w *wordSelection) SubmitWords(words []string) error {
	if err := w.acceptingInput(); err != nil {
		return err
	}
	if len(words) == 0 {
		return ErrEmptyAnswer
	}
	w.answer(MatchesAnswer(JoinWords(words), w.answers))
	return nil
}

func (w *wordSelection) resetWords() {
	if w.bank != nil {
		w.bank.Reset(w.env.Rand)
	}
}

// Done reports whether a correct answer has been given.
func (w *wordSelection) Done() bool {
	return w.state == StateAnswered && w.correct
}

// Translation builds a sentence from a word bank.
type Translation struct {
	wordSelection
}

// NewTranslation returns an unloaded translation engine.
func NewTranslation(env *Env) *Translation {
	return &Translation{wordSelection{base: newBase(content.KindTranslation, env)}}
}

func (e *Translation) Load(ex content.Exercise) error {
	if err := e.bind(ex); err != nil {
		e.bank = nil
		return err
	}
	p := ex.Payload.(content.Translation)
	e.bindWords(p.Prompt, p.CorrectAnswers, p.WordBank)
	e.publish(EventLoaded, "")
	return nil
}

// Submit checks the current selection.
func (e *Translation) Submit() error {
	return e.SubmitWords(e.Selected())
}

func (e *Translation) Reset() {
	if !e.rewind() {
		return
	}
	e.resetWords()
	e.publish(EventReset, "")
}

func (e *Translation) Unload() {
	e.release()
	e.bank = nil
}
