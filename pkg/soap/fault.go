package soap

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Fault is a SOAP fault carried in a reply body, normalised across the 1.1
// shape (faultcode/faultstring/detail) and the 1.2 shape (Code/Reason/Detail).
// Fault implements error.
type Fault struct {
	Version Version
	Code    string
	Reason  string
	Actor   string
	Detail  string
}

func (f *Fault) Error() string {
	if f.Code == "" {
		return fmt.Sprintf("soap fault: %s", f.Reason)
	}
	return fmt.Sprintf("soap fault [%s]: %s", f.Code, f.Reason)
}

// parseFault normalises a Fault element of either protocol version
func parseFault(el *etree.Element, version Version) *Fault {
	f := &Fault{Version: version}

	if version == SOAP12 {
		if code := el.FindElement("./Code/Value"); code != nil {
			f.Code = strings.TrimSpace(code.Text())
		}
		if reason := el.FindElement("./Reason/Text"); reason != nil {
			f.Reason = strings.TrimSpace(reason.Text())
		}
		if role := el.FindElement("./Role"); role != nil {
			f.Actor = strings.TrimSpace(role.Text())
		}
		if detail := el.FindElement("./Detail"); detail != nil {
			f.Detail = strings.TrimSpace(detail.Text())
		}
		return f
	}

	if code := el.FindElement("./faultcode"); code != nil {
		f.Code = strings.TrimSpace(code.Text())
	}
	if reason := el.FindElement("./faultstring"); reason != nil {
		f.Reason = strings.TrimSpace(reason.Text())
	}
	if actor := el.FindElement("./faultactor"); actor != nil {
		f.Actor = strings.TrimSpace(actor.Text())
	}
	if detail := el.FindElement("./detail"); detail != nil {
		f.Detail = strings.TrimSpace(detail.Text())
	}
	return f
}
