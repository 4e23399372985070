package integration

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cucumber/godog"

	gormstore "github.com/modelgate/modelgate/pkg/server/store/gorm"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	client       *http.Client
	response     *http.Response
	responseBody []byte
	recordID     string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:     tc,
		client: tc.NewClient(),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a modelgate server is running$`, s.aServerIsRunning)
	sc.Step(`^a user "([^"]*)" exists with password "([^"]*)"$`, s.aUserExists)
	sc.Step(`^"([^"]*)" holds permissions "([^"]*)"$`, s.userHoldsPermissions)
	sc.Step(`^I sign in as "([^"]*)" with password "([^"]*)"$`, s.iSignIn)
	sc.Step(`^I am signed out$`, s.iAmSignedOut)

	sc.Step(`^I visit "([^"]*)"$`, s.iVisit)
	sc.Step(`^I submit a new model with col1 "([^"]*)" and col2 "([^"]*)"$`, s.iSubmitANewModel)
	sc.Step(`^a model exists with col1 "([^"]*)" and col2 "([^"]*)"$`, s.aModelExists)
	sc.Step(`^I update that model with col1 "([^"]*)" and col2 "([^"]*)"$`, s.iUpdateThatModel)
	sc.Step(`^I delete that model$`, s.iDeleteThatModel)

	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should redirect to "([^"]*)"$`, s.theResponseShouldRedirectTo)
	sc.Step(`^the response should redirect to the created model$`, s.theResponseShouldRedirectToCreatedModel)
	sc.Step(`^the response should redirect to that model$`, s.theResponseShouldRedirectToThatModel)
	sc.Step(`^following the redirect shows "([^"]*)"$`, s.followingTheRedirectShows)

	sc.Step(`^a model with col1 "([^"]*)" and col2 "([^"]*)" should exist$`, s.aModelShouldExist)
	sc.Step(`^no model with col2 "([^"]*)" should exist$`, s.noModelShouldExist)
	sc.Step(`^that model should have col1 "([^"]*)" and col2 "([^"]*)"$`, s.thatModelShouldHave)
	sc.Step(`^that model should not exist$`, s.thatModelShouldNotExist)
}

func (s *StepsContext) aServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aUserExists(login, password string) error {
	// Scenarios run against a shared database, so recreate per scenario
	if err := s.tc.DB.Exec(`
		DELETE FROM permissions WHERE user_id IN (SELECT id FROM users WHERE login = ?)
	`, login).Error; err != nil {
		return err
	}
	if err := s.tc.DB.Exec(`DELETE FROM users WHERE login = ?`, login).Error; err != nil {
		return err
	}

	users := gormstore.NewUsersStore(s.tc.DB)
	_, err := users.CreateUser(login, []byte(password))
	return err
}

func (s *StepsContext) userHoldsPermissions(login, permissionList string) error {
	users := gormstore.NewUsersStore(s.tc.DB)
	user, err := users.FetchUserByLogin(login)
	if err != nil {
		return err
	}

	for _, permission := range strings.Split(permissionList, ",") {
		permission = strings.TrimSpace(permission)
		if err := users.GrantPermission(user.ID, permission); err != nil {
			return err
		}
	}
	return nil
}

func (s *StepsContext) iSignIn(login, password string) error {
	form := url.Values{"login": {login}, "password": {password}}
	resp, err := s.client.PostForm(s.tc.ServerURL+"/login", form)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusSeeOther {
		return fmt.Errorf("expected sign-in to redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/model" {
		return fmt.Errorf("sign-in failed, redirected to %s", loc)
	}
	return nil
}

func (s *StepsContext) iAmSignedOut() error {
	s.client = s.tc.NewClient()
	return nil
}

func (s *StepsContext) iVisit(path string) error {
	resp, err := s.client.Get(s.tc.ServerURL + path)
	if err != nil {
		return err
	}
	return s.record(resp)
}

func (s *StepsContext) iSubmitANewModel(col1, col2 string) error {
	form := url.Values{"col1": {col1}, "col2": {col2}}
	resp, err := s.client.PostForm(s.tc.ServerURL+"/model", form)
	if err != nil {
		return err
	}
	return s.record(resp)
}

func (s *StepsContext) aModelExists(col1, col2 string) error {
	records := gormstore.NewRecordsStore(s.tc.DB)
	record, err := records.CreateRecord(col1, col2)
	if err != nil {
		return err
	}
	s.recordID = record.ID
	return nil
}

func (s *StepsContext) iUpdateThatModel(col1, col2 string) error {
	form := url.Values{"_method": {"PUT"}, "col1": {col1}, "col2": {col2}}
	resp, err := s.client.PostForm(s.tc.ServerURL+"/model/"+s.recordID, form)
	if err != nil {
		return err
	}
	return s.record(resp)
}

func (s *StepsContext) iDeleteThatModel() error {
	form := url.Values{"_method": {"DELETE"}}
	resp, err := s.client.PostForm(s.tc.ServerURL+"/model/"+s.recordID, form)
	if err != nil {
		return err
	}
	return s.record(resp)
}

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldRedirectTo(path string) error {
	if s.response.StatusCode != http.StatusSeeOther && s.response.StatusCode != http.StatusFound {
		return fmt.Errorf("expected a redirect, got %d", s.response.StatusCode)
	}
	if loc := s.response.Header.Get("Location"); loc != path {
		return fmt.Errorf("expected redirect to %s, got %s", path, loc)
	}
	return nil
}

func (s *StepsContext) theResponseShouldRedirectToCreatedModel() error {
	if s.response.StatusCode != http.StatusSeeOther {
		return fmt.Errorf("expected a redirect, got %d", s.response.StatusCode)
	}
	loc := s.response.Header.Get("Location")
	if !strings.HasPrefix(loc, "/model/") {
		return fmt.Errorf("expected redirect to the created model, got %s", loc)
	}
	s.recordID = strings.TrimPrefix(loc, "/model/")
	return nil
}

func (s *StepsContext) theResponseShouldRedirectToThatModel() error {
	return s.theResponseShouldRedirectTo("/model/" + s.recordID)
}

func (s *StepsContext) followingTheRedirectShows(text string) error {
	resp, err := s.client.Get(s.tc.ServerURL + s.response.Header.Get("Location"))
	if err != nil {
		return err
	}
	if err := s.record(resp); err != nil {
		return err
	}
	if !strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("expected page to contain %q", text)
	}
	return nil
}

func (s *StepsContext) aModelShouldExist(col1, col2 string) error {
	var count int64
	err := s.tc.DB.Raw(
		`SELECT count(*) FROM models WHERE col1 = ? AND col2 = ?`, col1, col2,
	).Scan(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no model with col1=%q col2=%q found", col1, col2)
	}
	return nil
}

func (s *StepsContext) noModelShouldExist(col2 string) error {
	var count int64
	err := s.tc.DB.Raw(`SELECT count(*) FROM models WHERE col2 = ?`, col2).Scan(&count).Error
	if err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("unexpected model with col2=%q found", col2)
	}
	return nil
}

func (s *StepsContext) thatModelShouldHave(col1, col2 string) error {
	var count int64
	err := s.tc.DB.Raw(
		`SELECT count(*) FROM models WHERE id = ? AND col1 = ? AND col2 = ?`,
		s.recordID, col1, col2,
	).Scan(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("model %s does not have col1=%q col2=%q", s.recordID, col1, col2)
	}
	return nil
}

func (s *StepsContext) thatModelShouldNotExist() error {
	var count int64
	err := s.tc.DB.Raw(`SELECT count(*) FROM models WHERE id = ?`, s.recordID).Scan(&count).Error
	if err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("model %s still exists", s.recordID)
	}
	return nil
}

func (s *StepsContext) record(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	s.response = resp
	s.responseBody = body
	return nil
}
