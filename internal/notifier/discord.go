package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/logging"
	"github.com/gdg-garage/conference-api/internal/models"
)

type Notifier interface {
	NotifyConference(ctx context.Context, owner *models.Profile, conf *models.Conference) error
	NotifyReservation(ctx context.Context, owner *models.Profile, res *models.Reservation) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyConference(ctx context.Context, owner *models.Profile, conf *models.Conference) error {
	return n.send(ctx, ConferenceMessage(owner, conf))
}

func (n *DiscordNotifier) NotifyReservation(ctx context.Context, owner *models.Profile, res *models.Reservation) error {
	return n.send(ctx, ReservationMessage(owner, res))
}

func (n *DiscordNotifier) send(ctx context.Context, message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message, discordgo.WithContext(ctx))
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "failed to send discord message", "error", err)
		return err
	}
	return nil
}

// ConferenceMessage renders the channel announcement for a new conference.
func ConferenceMessage(owner *models.Profile, conf *models.Conference) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎤 **New Conference**\n**Name:** %s\n**Organizer:** %s (<@%s>)\n**City:** %s",
		conf.Name, owner.DisplayName, owner.ID, conf.City)
	if dates := dateRange(forms.FormatDate(conf.StartDate), forms.FormatDate(conf.EndDate)); dates != "" {
		fmt.Fprintf(&b, "\n**Dates:** %s", dates)
	}
	if conf.MaxAttendees > 0 {
		fmt.Fprintf(&b, "\n**Seats:** %d/%d", conf.SeatsAvailable, conf.MaxAttendees)
	}
	if len(conf.Topics) > 0 {
		fmt.Fprintf(&b, "\n**Topics:** %s", strings.Join(conf.Topics, ", "))
	}
	return b.String()
}

// ReservationMessage renders the channel announcement for an admitted
// reservation.
func ReservationMessage(owner *models.Profile, res *models.Reservation) string {
	dates := dateRange(forms.FormatDate(res.StartDate), forms.FormatDate(res.EndDate))
	if dates == "" {
		dates = "open"
	}
	return fmt.Sprintf("📅 **Reservation**\n**User:** %s (<@%s>)\n**Name:** %s\n**Dates:** %s",
		owner.DisplayName, owner.ID, res.Name, dates)
}

func dateRange(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	if start == "" {
		start = "…"
	}
	if end == "" {
		end = "…"
	}
	return start + " - " + end
}

// Multi fans a notification out to every wrapped notifier and joins their
// errors.
type Multi []Notifier

func (m Multi) NotifyConference(ctx context.Context, owner *models.Profile, conf *models.Conference) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyConference(ctx, owner, conf); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) NotifyReservation(ctx context.Context, owner *models.Profile, res *models.Reservation) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyReservation(ctx, owner, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
