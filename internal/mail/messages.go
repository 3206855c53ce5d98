package mail

import "fmt"

// Message builders for the account lifecycle mails. Japanese is the
// platform default; the registration flow also accepts "en".

// WelcomeJobSeeker carries the one-time generated password.
func WelcomeJobSeeker(to, name, password, language string) Message {
	if language == "en" {
		return Message{
			To:      []string{to},
			Subject: "Welcome to JustJoin",
			Body: fmt.Sprintf("Hello %s,\n\nYour JustJoin account is ready.\n"+
				"Temporary password: %s\n\nPlease change it after your first login.\n", name, password),
		}
	}
	return Message{
		To:      []string{to},
		Subject: "JustJoinへようこそ",
		Body: fmt.Sprintf("%s様\n\nJustJoinへの登録が完了しました。\n"+
			"仮パスワード: %s\n\n初回ログイン後に変更してください。\n", name, password),
	}
}

// CompanyRegistered confirms receipt of a company application.
func CompanyRegistered(to, companyName string) Message {
	return Message{
		To:      []string{to},
		Subject: "【JustJoin】企業登録を受け付けました",
		Body: fmt.Sprintf("%s御中\n\n企業アカウントの申請を受け付けました。\n"+
			"審査完了後、ログイン情報をお送りします。\n", companyName),
	}
}

// CompanyPendingReview notifies the admin of a new application.
func CompanyPendingReview(adminEmail, companyName, companyEmail string) Message {
	return Message{
		To:      []string{adminEmail},
		Subject: "【JustJoin】新規企業申請",
		Body:    fmt.Sprintf("新しい企業申請があります。\n\n企業名: %s\nメール: %s\n", companyName, companyEmail),
	}
}

// CompanyApproved carries the freshly generated password.
func CompanyApproved(to, password string) Message {
	return Message{
		To:      []string{to},
		Subject: "【JustJoin】企業アカウントが承認されました",
		Body: fmt.Sprintf("企業アカウントが承認されました。\n\n"+
			"パスワード: %s\n\nログイン後に変更してください。\n", password),
	}
}

// CompanyRejected tells the company the outcome and the reason.
func CompanyRejected(to, reason string) Message {
	return Message{
		To:      []string{to},
		Subject: "【JustJoin】企業アカウント審査結果",
		Body:    fmt.Sprintf("誠に残念ながら、今回の申請は承認されませんでした。\n\n理由: %s\n", reason),
	}
}

// PasswordReset carries a newly generated password.
func PasswordReset(to, password string) Message {
	return Message{
		To:      []string{to},
		Subject: "【JustJoin】パスワード再発行",
		Body:    fmt.Sprintf("新しいパスワードを発行しました。\n\nパスワード: %s\n\nログイン後に変更してください。\n", password),
	}
}

// PasswordChanged is a change notice; it never contains the password.
func PasswordChanged(to string) Message {
	return Message{
		To:      []string{to},
		Subject: "【JustJoin】パスワード変更のお知らせ",
		Body:    "パスワードが変更されました。\n心当たりがない場合は管理者までご連絡ください。\n",
	}
}

// ErrorAlert summarizes recent error log entries for the admin.
func ErrorAlert(adminEmail, summary string) Message {
	return Message{
		To:      []string{adminEmail},
		Subject: "【JustJoin】エラーアラート",
		Body:    "直近のエラーログ:\n\n" + summary,
	}
}
