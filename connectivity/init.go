package connectivity

import (
	"github.com/farshidtz/elog"
)

var logger *elog.Logger

func init() {
	logger = elog.New("[wolk] ", &elog.Config{
		DebugPrefix: "[wolk-debug] ",
		DebugEnvVar: "WOLK_DEBUG",
	})
}
