package api

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/immunity-api/schema"
	"github.com/bitmark-inc/immunity-api/utils"
	"github.com/bitmark-inc/immunity-api/validity"
)

type protectionResponse struct {
	Protected bool                 `json:"protected"`
	Date      validity.Date        `json:"date"`
	Until     *validity.Date       `json:"until"`
	Ranges    []protectingRange    `json:"ranges"`
	Coverage  []validity.DateRange `json:"coverage"`
	Message   string               `json:"message"`
}

func initTestI18N() {
	os.Setenv("TEST_I18N_DIR", "../i18n")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("test")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	utils.InitI18NBundle()
}

func TestPersonProtection(t *testing.T) {
	initTestI18N()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newTestServer(ctl)
	s.core.EXPECT().PersonHistory(gomock.Any(), testPersonID).Return(twoPfizerHistory(), nil).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/persons/:personID/protection", s.personProtection)

	w := serve(router, "GET", "/persons/"+testPersonID.String()+"/protection?date=2021-06-01&lang=de")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp protectionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &jResp), "wrong json unmarshal")
	assert.True(t, jResp.Protected)
	assert.Equal(t, "2021-06-01", jResp.Date.String())
	if assert.NotNil(t, jResp.Until) {
		assert.Equal(t, "2022-01-22", jResp.Until.String())
	}
	descriptions := map[schema.ValidityRule]string{}
	for _, r := range jResp.Ranges {
		descriptions[r.Rule] = r.Description
	}
	assert.Equal(t, map[schema.ValidityRule]string{
		schema.RulePerTypeDoubleDose: "zweite oder weitere Dosis desselben Impfstoffs",
		schema.RuleComboThreshold:    "zweite oder weitere Dosis eines mRNA- oder Vektorimpfstoffs",
	}, descriptions)
	assert.Len(t, jResp.Coverage, 1)
	assert.Equal(t, "Geschützt am 2021-06-01. Der aktuelle Schutz gilt bis 2022-01-22.", jResp.Message)
}

func TestPersonProtectionNotProtected(t *testing.T) {
	initTestI18N()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newTestServer(ctl)
	s.core.EXPECT().PersonHistory(gomock.Any(), testPersonID).Return(twoPfizerHistory(), nil).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/persons/:personID/protection", s.personProtection)

	// the first shot alone does not protect
	w := serve(router, "GET", "/persons/"+testPersonID.String()+"/protection?date=2021-01-10")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp protectionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &jResp), "wrong json unmarshal")
	assert.False(t, jResp.Protected)
	assert.Nil(t, jResp.Until)
	assert.Empty(t, jResp.Ranges)
	assert.Equal(t, "Not protected on 2021-01-10.", jResp.Message)
}

func TestPersonProtectionInvalidDate(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newTestServer(ctl)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/persons/:personID/protection", s.personProtection)

	w := serve(router, "GET", "/persons/"+testPersonID.String()+"/protection?date=01.06.2021")
	assertErrorCode(t, w, http.StatusBadRequest, 1013)
}
