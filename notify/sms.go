package notify

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

var smsClient = &http.Client{Timeout: 15 * time.Second}

// SendOTPSMS delivers a password-reset code through the Twilio messages API.
func SendOTPSMS(phone, otp string) error {
	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_PHONE_NUMBER")

	if accountSID == "" || authToken == "" || from == "" {
		return fmt.Errorf("twilio configuration missing")
	}

	if !strings.HasPrefix(phone, "+") {
		phone = "+91" + phone
	}

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", from)
	form.Set("Body", "Your OTP for password reset is: "+otp)

	endpoint := "https://api.twilio.com/2010-04-01/Accounts/" + accountSID + "/Messages.json"
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(accountSID, authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := smsClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio API error (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}
