package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/bitmark-inc/immunity-api/schema"
	"github.com/bitmark-inc/immunity-api/utils"
	"github.com/bitmark-inc/immunity-api/validity"
)

type protectionQueryParams struct {
	Date string `form:"date"`
	Lang string `form:"lang"`
}

// protectingRange is a validity range covering the requested day with the
// localized name of its rule
type protectingRange struct {
	schema.ValidityRange
	Description string `json:"description"`
}

func describeRanges(loc *i18n.Localizer, ranges []schema.ValidityRange) []protectingRange {
	described := make([]protectingRange, 0, len(ranges))
	for _, r := range ranges {
		messageID := "rule." + string(r.Rule)
		description, err := loc.Localize(&i18n.LocalizeConfig{MessageID: messageID})
		if err != nil {
			log.WithField("message_id", messageID).Warn(err)
			description = string(r.Rule)
		}
		described = append(described, protectingRange{ValidityRange: r, Description: description})
	}
	return described
}

// personProtection tells whether a person is protected on a day, which
// ranges protect them and how long the protection lasts
func (s *Server) personProtection(c *gin.Context) {
	personID, ok := parsePersonID(c)
	if !ok {
		return
	}

	var params protectionQueryParams
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	day := validity.DateOf(time.Now())
	if params.Date != "" {
		d, err := validity.ParseDate(params.Date)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidDate)
			return
		}
		day = d
	}

	result, ok := s.compute(c, validity.SinglePerson(personID))
	if !ok {
		return
	}

	covering := validity.ProtectedOn(result.Ranges, day)
	coverage := validity.Coverage(result.Ranges)

	var until *validity.Date
	for _, w := range coverage {
		if w.Contains(day) {
			end := w.End
			until = &end
			break
		}
	}

	loc := utils.NewLocalizer(params.Lang, c.GetHeader("Accept-Language"))
	localizeConfig := &i18n.LocalizeConfig{
		MessageID:    "protection.unprotected",
		TemplateData: map[string]interface{}{"Date": day.String()},
	}
	if until != nil {
		localizeConfig = &i18n.LocalizeConfig{
			MessageID: "protection.protected",
			TemplateData: map[string]interface{}{
				"Date":  day.String(),
				"Until": until.String(),
			},
		}
	}

	message, err := loc.Localize(localizeConfig)
	if err != nil {
		log.WithField("message_id", localizeConfig.MessageID).Warn(err)
	}

	c.JSON(http.StatusOK, gin.H{
		"person_id": personID,
		"date":      day,
		"protected": until != nil,
		"until":     until,
		"ranges":    describeRanges(loc, covering),
		"coverage":  coverage,
		"message":   message,
	})
}
