package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite provides a test suite for end-to-end tests
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	browser, err := pw.Chromium.Launch()
	require.NoError(suite.T(), err, "could not launch chromium")
	suite.browser = browser

	suite.expect = playwright.NewPlaywrightAssertions()
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.browser != nil {
		suite.browser.Close()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

// SetupTest runs before each test
func (suite *E2ETestSuite) SetupTest() {
	page, err := suite.browser.NewPage()
	require.NoError(suite.T(), err, "could not create page")
	suite.page = page

	_, err = suite.page.Goto(appURL)
	require.NoError(suite.T(), err, "could not navigate to app")
}

// TearDownTest runs after each test
func (suite *E2ETestSuite) TearDownTest() {
	if suite.page != nil {
		suite.page.Close()
	}
}

func (suite *E2ETestSuite) register(username, email, password string) {
	_, err := suite.page.Goto(appURL + "/register")
	require.NoError(suite.T(), err, "could not open register page")

	err = suite.expect.Locator(suite.page.Locator(".register-form")).ToBeVisible()
	require.NoError(suite.T(), err, "register form not visible")

	require.NoError(suite.T(), suite.page.Locator("input[name=username]").Fill(username))
	require.NoError(suite.T(), suite.page.Locator("input[name=email]").Fill(email))
	require.NoError(suite.T(), suite.page.Locator("input[name=password]").Fill(password))

	err = suite.page.Locator(".register-btn").Click()
	require.NoError(suite.T(), err, "failed to submit registration")

	err = suite.expect.Locator(suite.page.Locator(".notice")).ToContainText("Registration successful")
	require.NoError(suite.T(), err, "registration notice not shown")
}

func (suite *E2ETestSuite) login(email, password string) {
	err := suite.expect.Locator(suite.page.Locator(".login-form")).ToBeVisible()
	require.NoError(suite.T(), err, "login form not visible")

	require.NoError(suite.T(), suite.page.Locator("input[name=email]").Fill(email))
	require.NoError(suite.T(), suite.page.Locator("input[name=password]").Fill(password))

	err = suite.page.Locator(".login-btn").Click()
	require.NoError(suite.T(), err, "failed to click login")

	err = suite.expect.Locator(suite.page.Locator(".dashboard")).ToBeVisible()
	require.NoError(suite.T(), err, "did not reach dashboard after login")
}

func (suite *E2ETestSuite) TestCompleteUserFlow() {
	// Register and log in
	suite.register("alice", "alice@example.com", "pw-e2e-1")
	suite.login("alice@example.com", "pw-e2e-1")

	// Fresh account shows a zero total
	err := suite.expect.Locator(suite.page.Locator(".total")).ToHaveText("0.00")
	require.NoError(suite.T(), err, "fresh dashboard should show 0.00")

	// Create an expense
	err = suite.page.Locator(".add-btn").Click()
	require.NoError(suite.T(), err, "failed to open add form")

	err = suite.expect.Locator(suite.page.Locator(".expense-form")).ToBeVisible()
	require.NoError(suite.T(), err, "expense form not visible")

	require.NoError(suite.T(), suite.page.Locator("input[name=title]").Fill("Coffee"))
	require.NoError(suite.T(), suite.page.Locator("input[name=amount]").Fill("3.50"))
	require.NoError(suite.T(), suite.page.Locator("input[name=category]").Fill("Food"))

	err = suite.page.Locator(".save-btn").Click()
	require.NoError(suite.T(), err, "failed to submit expense")

	// Verify in list with the exact total
	err = suite.expect.Locator(suite.page.Locator(".expense-item")).ToHaveCount(1)
	require.NoError(suite.T(), err, "expense item count mismatch")

	item := suite.page.Locator(".expense-item").First()
	err = suite.expect.Locator(item.Locator(".expense-details strong")).ToHaveText("Coffee")
	require.NoError(suite.T(), err, "title mismatch")

	err = suite.expect.Locator(item.Locator(".expense-amount")).ToHaveText("3.50")
	require.NoError(suite.T(), err, "amount mismatch")

	err = suite.expect.Locator(suite.page.Locator(".total")).ToHaveText("3.50")
	require.NoError(suite.T(), err, "total mismatch")

	// Delete it again
	err = suite.page.Locator(".delete-btn").Click()
	require.NoError(suite.T(), err, "failed to delete expense")

	err = suite.expect.Locator(suite.page.Locator(".expense-item")).ToHaveCount(0)
	require.NoError(suite.T(), err, "expense should be gone")

	err = suite.expect.Locator(suite.page.Locator(".total")).ToHaveText("0.00")
	require.NoError(suite.T(), err, "total should be back to 0.00")
}

func (suite *E2ETestSuite) TestInvalidLoginShowsError() {
	err := suite.expect.Locator(suite.page.Locator(".login-form")).ToBeVisible()
	require.NoError(suite.T(), err, "login form not visible")

	require.NoError(suite.T(), suite.page.Locator("input[name=email]").Fill("nobody@example.com"))
	require.NoError(suite.T(), suite.page.Locator("input[name=password]").Fill("wrong"))

	err = suite.page.Locator(".login-btn").Click()
	require.NoError(suite.T(), err, "failed to click login")

	err = suite.expect.Locator(suite.page.Locator(".error")).ToContainText("Invalid email or password")
	require.NoError(suite.T(), err, "error message not shown")
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
