package jobs

import (
	"context"
	"fmt"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/utils"
)

// RemindEligibleDonors tells donors whose waiting period ends today that
// they can give blood again.
func (jr *JobRunner) RemindEligibleDonors() {
	jr.runWithRecovery("RemindEligibleDonors", jr.remindEligibleDonors)
}

func (jr *JobRunner) remindEligibleDonors(ctx context.Context) (int, error) {
	donors, err := jr.store.Users().List(ctx, domain.UserRoleDonor)
	if err != nil {
		return 0, fmt.Errorf("failed to list donors: %w", err)
	}
	today := jr.today()

	sent := 0
	for _, donor := range donors {
		e, err := jr.services.Donations.Eligibility(ctx, donor.ID)
		if err != nil {
			logger.Error("Failed to compute eligibility", "userID", donor.ID, "error", err)
			continue
		}
		if e.NextEligibleDate == nil || !utils.SameDay(*e.NextEligibleDate, today) {
			continue
		}
		err = jr.services.Notifications.Notify(ctx, donor.ID, "You can donate again",
			fmt.Sprintf("Hi %s, your waiting period is over. You are eligible to donate blood from today.", donor.Name),
			domain.NotificationTypeInfo)
		if err != nil {
			logger.Error("Failed to remind donor", "userID", donor.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
