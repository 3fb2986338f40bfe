package catalog

import "fmt"

// CheckIntegrity verifies the static tables are internally consistent. It runs
// once at startup (and in tests) so a bad table edit fails fast instead of
// surfacing as a confusing runtime verdict.
func CheckIntegrity() error {
	for id, svc := range Services {
		if len(svc.Steps) == 0 {
			return fmt.Errorf("service %s has no steps", id)
		}
		for i, step := range svc.Steps {
			if step.ID != i+1 {
				return fmt.Errorf("service %s step %d has id %d, want %d", id, i, step.ID, i+1)
			}
			if err := checkStepShape(step); err != nil {
				return fmt.Errorf("service %s step %d: %w", id, step.ID, err)
			}
		}
		if _, ok := Agencies[svc.Agency]; !ok {
			return fmt.Errorf("service %s references unknown agency %s", id, svc.Agency)
		}
	}
	for id, req := range ServiceRequirements {
		if TierRank(req.RequiredSecurityLevel) == 0 {
			return fmt.Errorf("service %s requires unknown tier %q", id, req.RequiredSecurityLevel)
		}
		if _, ok := Services[id]; !ok {
			return fmt.Errorf("requirements declared for unknown service %s", id)
		}
	}
	for tier, spec := range SecurityTiers {
		for _, svcID := range spec.AllowedServices {
			if _, ok := Services[svcID]; !ok {
				return fmt.Errorf("tier %s allows unknown service %s", tier, svcID)
			}
		}
	}
	return nil
}

func checkStepShape(step Step) error {
	switch step.Kind {
	case StepKindLink:
		if step.Link == nil {
			return fmt.Errorf("link step missing link detail")
		}
		if step.Checklist != nil || step.Upload != nil {
			return fmt.Errorf("link step carries foreign detail")
		}
	case StepKindChecklist:
		if step.Checklist == nil {
			return fmt.Errorf("checklist step missing checklist detail")
		}
		if step.Link != nil || step.Upload != nil {
			return fmt.Errorf("checklist step carries foreign detail")
		}
	case StepKindUpload:
		if step.Upload == nil {
			return fmt.Errorf("upload step missing upload detail")
		}
		if step.Link != nil || step.Checklist != nil {
			return fmt.Errorf("upload step carries foreign detail")
		}
	case StepKindInfo:
		if step.Link != nil || step.Checklist != nil || step.Upload != nil {
			return fmt.Errorf("info step carries detail")
		}
	case StepKindComplete:
		// Completion steps may link to a status tracker.
		if step.Checklist != nil || step.Upload != nil {
			return fmt.Errorf("complete step carries foreign detail")
		}
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
	return nil
}
