package tutor

import "fmt"

// Page is the screen a session is on.
type Page int

const (
	PageSplash Page = iota
	PageLogin
	PageSignup
	PageLevelSelect
	PageTopicSelect
	PageLesson
	PagePractice
	PageQuiz
)

// AllPages returns every page in flow order.
func AllPages() []Page {
	return []Page{
		PageSplash, PageLogin, PageSignup, PageLevelSelect,
		PageTopicSelect, PageLesson, PagePractice, PageQuiz,
	}
}

// String returns the page key used in the API and logs.
func (p Page) String() string {
	switch p {
	case PageSplash:
		return "splash"
	case PageLogin:
		return "login"
	case PageSignup:
		return "signup"
	case PageLevelSelect:
		return "skill_level_selection"
	case PageTopicSelect:
		return "topic_selection"
	case PageLesson:
		return "chat_tutor"
	case PagePractice:
		return "leetcode_practice"
	case PageQuiz:
		return "mcq_test"
	default:
		return fmt.Sprintf("page(%d)", int(p))
	}
}

// ParsePage resolves a page key.
func ParsePage(s string) (Page, error) {
	for _, p := range AllPages() {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown page %q", s)
}

// Public reports whether the page is reachable without logging in.
func (p Page) Public() bool {
	return p == PageSplash || p == PageLogin || p == PageSignup
}

// resolvePage applies the navigation guards to the requested page.
// Protected pages need a login; lesson pages need a topic or guided mode.
func resolvePage(s *State) (Page, error) {
	switch s.Page {
	case PageSplash, PageLogin, PageSignup:
		return s.Page, nil
	case PageLevelSelect:
		if !s.LoggedIn {
			return PageLogin, nil
		}
		return PageLevelSelect, nil
	case PageTopicSelect:
		if !s.LoggedIn {
			return PageLogin, nil
		}
		if s.Level == "" {
			return PageLevelSelect, nil
		}
		return PageTopicSelect, nil
	case PageLesson, PagePractice, PageQuiz:
		if !s.LoggedIn {
			return PageLogin, nil
		}
		if s.Level == "" {
			return PageLevelSelect, nil
		}
		if s.SelectedTopic == "" && !s.GuidedMode {
			return PageTopicSelect, nil
		}
		return s.Page, nil
	default:
		return s.Page, fmt.Errorf("unknown page %d", int(s.Page))
	}
}
