package bot

import (
	"context"
	"fmt"
	"time"

	"motoride/pkg/models"

	tele "gopkg.in/telebot.v3"
)

const birthdateLayout = "2006-01-02"

// handleRegisterStart opens a fresh registration conversation. Each session
// gets its own controller wired to this chat for feedback and navigation.
func (b *Bot) handleRegisterStart(c tele.Context) error {
	session, ok := b.session(c.Sender().ID)
	if !ok {
		return c.Send(messages["session_expired"])
	}

	session.mu.Lock()
	session.Reg = b.Svc.Registration(
		chatNavigator{b: b, chat: c.Chat(), sender: c.Sender().ID},
		chatNotifier{bot: b.Bot, chat: c.Chat()},
	)
	session.State = StateRegFirstName
	session.mu.Unlock()
	return c.Send(messages["reg_first_name"], tele.RemoveKeyboard)
}

// handleRegistrationText walks the applicant through the form field by
// field. Format problems are caught at submit time by the controller's
// validation chain; only the birthdate needs parsing here. Runs with
// session.mu held by handleText.
func (b *Bot) handleRegistrationText(c tele.Context, session *UserSession) error {
	if session.Reg == nil {
		session.State = StateIdle
		return c.Send(messages["session_expired"])
	}

	switch session.State {
	case StateRegFirstName:
		session.Reg.UpdateField(models.FieldFirstName, c.Text())
		session.State = StateRegLastName
		return c.Send(messages["reg_last_name"])

	case StateRegLastName:
		session.Reg.UpdateField(models.FieldLastName, c.Text())
		session.State = StateRegEmail
		return c.Send(messages["reg_email"])

	case StateRegEmail:
		session.Reg.UpdateField(models.FieldEmail, c.Text())
		session.State = StateRegBirthdate
		return c.Send(messages["reg_birthdate"])

	case StateRegBirthdate:
		birthdate, err := time.Parse(birthdateLayout, c.Text())
		if err != nil {
			return c.Send(messages["reg_bad_date"])
		}
		session.Reg.SetBirthdate(birthdate)
		session.State = StateRegPhone
		return c.Send(messages["reg_phone"])

	case StateRegPhone:
		session.Reg.UpdateField(models.FieldPhoneNumber, c.Text())
		session.State = StateRegMotoModel
		return c.Send(messages["reg_moto_model"])

	case StateRegMotoModel:
		session.Reg.UpdateField(models.FieldMotorcycleModel, c.Text())
		session.State = StateRegMotoRegNo
		return c.Send(messages["reg_moto_reg_no"])

	case StateRegMotoRegNo:
		session.Reg.UpdateField(models.FieldMotorcycleRegNo, c.Text())
		session.State = StateRegPassword
		return c.Send(messages["reg_password"])

	case StateRegPassword:
		session.Reg.UpdateField(models.FieldPassword, c.Text())
		session.State = StateRegConfirmPassword
		return c.Send(messages["reg_confirm"])

	case StateRegConfirmPassword:
		session.Reg.UpdateField(models.FieldConfirmPassword, c.Text())
		session.State = StateIdle
		return b.sendRegistrationSummary(c, session)
	}
	return nil
}

// sendRegistrationSummary runs with session.mu held by handleText.
func (b *Bot) sendRegistrationSummary(c tele.Context, session *UserSession) error {
	form := session.Reg.Form()

	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("✅ Submit", "reg_submit"),
		menu.Data("❌ Cancel", "reg_cancel"),
	))

	txt := fmt.Sprintf(messages["reg_summary"],
		form.FirstName, form.LastName,
		form.Email,
		form.Birthdate.Format(birthdateLayout),
		form.PhoneNumber,
		form.MotorcycleModel, form.MotorcycleRegNo,
	)
	return c.Send(txt, menu)
}

// handleRegistrationSubmit hands the form to the controller. A second tap
// on the submit button while the first submission is still running is
// absorbed by the controller's in-flight guard.
func (b *Bot) handleRegistrationSubmit(c tele.Context, session *UserSession) error {
	session.mu.Lock()
	reg := session.Reg
	session.mu.Unlock()
	if reg == nil {
		return c.Send(messages["session_expired"])
	}
	c.Respond(&tele.CallbackResponse{})
	// Submit navigates back through this session on success, so the
	// session lock must not be held across the call.
	reg.Submit(context.Background())
	return nil
}
