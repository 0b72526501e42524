package resolver

import (
	"fmt"
	"strings"
)

// Status is a diagnostic tool that returns a string describing every
// registration in the order it was added: the service key, its lifetime,
// and what produces it. A registration that was later replaced by a newer
// one for the same key is marked as such.
func (r *Resolver) Status() string {
	return r.registry.status()
}

func (g *registry) status() string {
	result := strings.Builder{}
	for _, reg := range g.entries {
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(fmt.Sprintf("%v - %v - %s", reg.key, reg.desc.lifetime(), describeDescriptor(reg.desc)))
		if g.index[reg.key] != reg.desc {
			result.WriteString(" (replaced)")
		}
	}
	return result.String()
}

func describeDescriptor(d descriptor) string {
	switch dd := d.(type) {
	case *singletonDescriptor:
		return fmt.Sprintf("instance of %v", dd.serviceType)
	case *ctorDescriptor:
		return "constructor " + formatConstructorDebug(dd.info)
	default:
		return fmt.Sprintf("concrete %v", d.concrete())
	}
}

// formatConstructorDebug renders a constructor signature instead of the
// native `%#v` formatter so the raw function address doesn't leak into the
// output, which keeps it stable for testing.
func formatConstructorDebug(info *ctorInfo) string {
	builder := strings.Builder{}
	builder.WriteString("(")
	for i, p := range info.params {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(p.String())
	}
	builder.WriteString(") ")
	builder.WriteString(info.result.String())
	if info.hasError {
		builder.WriteString(", error")
	}
	return builder.String()
}
