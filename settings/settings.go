package settings

import (
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
)

// Capsule describes the collision shape of an entity. CenterOffset is the height of the capsule's
// centre above the entity's position, which sits at the capsule's base by default.
type Capsule struct {
	Radius       float32 `toml:"radius" mapstructure:"radius"`
	Height       float32 `toml:"height" mapstructure:"height"`
	CenterOffset float32 `toml:"center_offset" mapstructure:"center_offset"`
}

// Motor holds the collision tunables of the motor.
type Motor struct {
	// Strategy selects the motor/grounding profile: "capsule" or "controller".
	Strategy            string  `toml:"strategy" mapstructure:"strategy"`
	SkinWidth           float32 `toml:"skin_width" mapstructure:"skin_width"`
	ContactOffset       float32 `toml:"contact_offset" mapstructure:"contact_offset"`
	GroundCheckDistance float32 `toml:"ground_check_distance" mapstructure:"ground_check_distance"`
	SlopeProbeDistance  float32 `toml:"slope_probe_distance" mapstructure:"slope_probe_distance"`
	MaxStepHeight       float32 `toml:"max_step_height" mapstructure:"max_step_height"`
	StepDepth           float32 `toml:"step_depth" mapstructure:"step_depth"`
	SnapTolerance       float32 `toml:"snap_tolerance" mapstructure:"snap_tolerance"`
}

// Movement holds ground and air speeds.
type Movement struct {
	WalkSpeed           float32 `toml:"walk_speed" mapstructure:"walk_speed"`
	RunSpeed            float32 `toml:"run_speed" mapstructure:"run_speed"`
	SprintSpeed         float32 `toml:"sprint_speed" mapstructure:"sprint_speed"`
	SprintWindup        float32 `toml:"sprint_windup" mapstructure:"sprint_windup"`
	CrouchSpeed         float32 `toml:"crouch_speed" mapstructure:"crouch_speed"`
	Acceleration        float32 `toml:"acceleration" mapstructure:"acceleration"`
	Deceleration        float32 `toml:"deceleration" mapstructure:"deceleration"`
	AirControl          float32 `toml:"air_control" mapstructure:"air_control"`
	Gravity             float32 `toml:"gravity" mapstructure:"gravity"`
	MaxFallSpeed        float32 `toml:"max_fall_speed" mapstructure:"max_fall_speed"`
	GroundStickVelocity float32 `toml:"ground_stick_velocity" mapstructure:"ground_stick_velocity"`
	RotationSpeed       float32 `toml:"rotation_speed" mapstructure:"rotation_speed"`
}

// Jump holds jump and fall timing.
type Jump struct {
	Height          float32 `toml:"height" mapstructure:"height"`
	Duration        float32 `toml:"duration" mapstructure:"duration"`
	CoyoteTime      float32 `toml:"coyote_time" mapstructure:"coyote_time"`
	BufferTime      float32 `toml:"buffer_time" mapstructure:"buffer_time"`
	MinFallDistance float32 `toml:"min_fall_distance" mapstructure:"min_fall_distance"`
}

// Slope holds walkability and slide tunables.
type Slope struct {
	MaxAngle       float32 `toml:"max_angle" mapstructure:"max_angle"`
	SlideSpeed     float32 `toml:"slide_speed" mapstructure:"slide_speed"`
	AngleDependent bool    `toml:"angle_dependent" mapstructure:"angle_dependent"`
	IntensityFloor float32 `toml:"intensity_floor" mapstructure:"intensity_floor"`
	// IntensityCurve names the easing curve mapping slope angle to slide intensity.
	IntensityCurve string  `toml:"intensity_curve" mapstructure:"intensity_curve"`
	SteerControl   float32 `toml:"steer_control" mapstructure:"steer_control"`
}

// Landing holds landing classification and recovery tunables.
type Landing struct {
	SoftThreshold     float32 `toml:"soft_threshold" mapstructure:"soft_threshold"`
	HardThreshold     float32 `toml:"hard_threshold" mapstructure:"hard_threshold"`
	SoftRecovery      float32 `toml:"soft_recovery" mapstructure:"soft_recovery"`
	HardRecovery      float32 `toml:"hard_recovery" mapstructure:"hard_recovery"`
	RollEnabled       bool    `toml:"roll_enabled" mapstructure:"roll_enabled"`
	RollTrigger       string  `toml:"roll_trigger" mapstructure:"roll_trigger"`
	RollSpeedModifier float32 `toml:"roll_speed_modifier" mapstructure:"roll_speed_modifier"`
	RollDuration      float32 `toml:"roll_duration" mapstructure:"roll_duration"`
}

// Stop holds the recovery durations of the stop states.
type Stop struct {
	SpeedThreshold float32 `toml:"speed_threshold" mapstructure:"speed_threshold"`
	LightRecovery  float32 `toml:"light_recovery" mapstructure:"light_recovery"`
	MediumRecovery float32 `toml:"medium_recovery" mapstructure:"medium_recovery"`
	HardRecovery   float32 `toml:"hard_recovery" mapstructure:"hard_recovery"`
}

// Prediction holds ring buffer and reconciliation tunables.
type Prediction struct {
	BufferCapacity    int     `toml:"buffer_capacity" mapstructure:"buffer_capacity"`
	PositionTolerance float32 `toml:"position_tolerance" mapstructure:"position_tolerance"`
	VelocityTolerance float32 `toml:"velocity_tolerance" mapstructure:"velocity_tolerance"`
}

// Locomotion is the read-only configuration of a character. It is created once at load and never
// mutated by the simulation.
type Locomotion struct {
	TickRate   float32    `toml:"tick_rate" mapstructure:"tick_rate"`
	Capsule    Capsule    `toml:"capsule" mapstructure:"capsule"`
	Motor      Motor      `toml:"motor" mapstructure:"motor"`
	Movement   Movement   `toml:"movement" mapstructure:"movement"`
	Jump       Jump       `toml:"jump" mapstructure:"jump"`
	Slope      Slope      `toml:"slope" mapstructure:"slope"`
	Landing    Landing    `toml:"landing" mapstructure:"landing"`
	Stop       Stop       `toml:"stop" mapstructure:"stop"`
	Prediction Prediction `toml:"prediction" mapstructure:"prediction"`
}

// Default returns the default locomotion configuration.
func Default() Locomotion {
	return Locomotion{
		TickRate: 60,
		Capsule: Capsule{
			Radius:       0.35,
			Height:       1.8,
			CenterOffset: 0.9,
		},
		Motor: Motor{
			Strategy:            "capsule",
			SkinWidth:           0.02,
			ContactOffset:       0.04,
			GroundCheckDistance: 0.3,
			SlopeProbeDistance:  0.6,
			MaxStepHeight:       0.4,
			StepDepth:           0.1,
			SnapTolerance:       0.1,
		},
		Movement: Movement{
			WalkSpeed:           2.5,
			RunSpeed:            5.5,
			SprintSpeed:         8,
			SprintWindup:        0.5,
			CrouchSpeed:         1.5,
			Acceleration:        30,
			Deceleration:        40,
			AirControl:          0.35,
			Gravity:             24,
			MaxFallSpeed:        40,
			GroundStickVelocity: 2,
			RotationSpeed:       720,
		},
		Jump: Jump{
			Height:          1.2,
			Duration:        0.6,
			CoyoteTime:      0.15,
			BufferTime:      0.12,
			MinFallDistance: 0.5,
		},
		Slope: Slope{
			MaxAngle:       45,
			SlideSpeed:     12,
			AngleDependent: true,
			IntensityFloor: 0.3,
			IntensityCurve: "linear",
			SteerControl:   0.5,
		},
		Landing: Landing{
			SoftThreshold:     6,
			HardThreshold:     14,
			SoftRecovery:      0.15,
			HardRecovery:      0.6,
			RollEnabled:       true,
			RollTrigger:       "movement",
			RollSpeedModifier: 1.3,
			RollDuration:      0.7,
		},
		Stop: Stop{
			SpeedThreshold: 0.2,
			LightRecovery:  0.1,
			MediumRecovery: 0.2,
			HardRecovery:   0.35,
		},
		Prediction: Prediction{
			BufferCapacity:    128,
			PositionTolerance: 0.01,
			VelocityTolerance: 0.05,
		},
	}
}

// DeltaTime returns the fixed tick length in seconds.
func (l Locomotion) DeltaTime() float32 {
	return 1 / l.TickRate
}

// Validate checks that every tunable is usable. It reports the first problem found.
func (l Locomotion) Validate() error {
	if l.TickRate <= 0 {
		return oerror.New(game.ErrorInvalidTickRate, l.TickRate)
	}
	if err := l.Capsule.Validate(); err != nil {
		return err
	}

	positive := []struct {
		name string
		v    float32
	}{
		{"movement.walk_speed", l.Movement.WalkSpeed},
		{"movement.run_speed", l.Movement.RunSpeed},
		{"movement.sprint_speed", l.Movement.SprintSpeed},
		{"movement.crouch_speed", l.Movement.CrouchSpeed},
		{"movement.acceleration", l.Movement.Acceleration},
		{"movement.deceleration", l.Movement.Deceleration},
		{"movement.gravity", l.Movement.Gravity},
		{"movement.max_fall_speed", l.Movement.MaxFallSpeed},
		{"movement.rotation_speed", l.Movement.RotationSpeed},
		{"motor.skin_width", l.Motor.SkinWidth},
		{"motor.ground_check_distance", l.Motor.GroundCheckDistance},
		{"motor.slope_probe_distance", l.Motor.SlopeProbeDistance},
		{"jump.height", l.Jump.Height},
		{"slope.max_angle", l.Slope.MaxAngle},
		{"landing.hard_threshold", l.Landing.HardThreshold},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return oerror.New(game.ErrorInvalidSetting, p.name, p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float32
	}{
		{"movement.air_control", l.Movement.AirControl},
		{"movement.ground_stick_velocity", l.Movement.GroundStickVelocity},
		{"movement.sprint_windup", l.Movement.SprintWindup},
		{"motor.contact_offset", l.Motor.ContactOffset},
		{"motor.max_step_height", l.Motor.MaxStepHeight},
		{"motor.step_depth", l.Motor.StepDepth},
		{"motor.snap_tolerance", l.Motor.SnapTolerance},
		{"jump.duration", l.Jump.Duration},
		{"jump.coyote_time", l.Jump.CoyoteTime},
		{"jump.buffer_time", l.Jump.BufferTime},
		{"jump.min_fall_distance", l.Jump.MinFallDistance},
		{"slope.slide_speed", l.Slope.SlideSpeed},
		{"slope.steer_control", l.Slope.SteerControl},
		{"landing.soft_threshold", l.Landing.SoftThreshold},
		{"landing.soft_recovery", l.Landing.SoftRecovery},
		{"landing.hard_recovery", l.Landing.HardRecovery},
		{"landing.roll_speed_modifier", l.Landing.RollSpeedModifier},
		{"landing.roll_duration", l.Landing.RollDuration},
		{"stop.speed_threshold", l.Stop.SpeedThreshold},
		{"stop.light_recovery", l.Stop.LightRecovery},
		{"stop.medium_recovery", l.Stop.MediumRecovery},
		{"stop.hard_recovery", l.Stop.HardRecovery},
	}
	for _, p := range nonNegative {
		if p.v < 0 {
			return oerror.New(game.ErrorInvalidSetting, p.name, p.v)
		}
	}

	if l.Movement.AirControl > 1 {
		return oerror.New(game.ErrorInvalidSetting, "movement.air_control", l.Movement.AirControl)
	}
	if l.Slope.MaxAngle >= game.SlideCeilingAngle {
		return oerror.New(game.ErrorInvalidSetting, "slope.max_angle", l.Slope.MaxAngle)
	}
	if l.Slope.IntensityFloor < 0 || l.Slope.IntensityFloor > 1 {
		return oerror.New(game.ErrorInvalidSetting, "slope.intensity_floor", l.Slope.IntensityFloor)
	}
	if l.Landing.SoftThreshold > l.Landing.HardThreshold {
		return oerror.New(game.ErrorInvalidSetting, "landing.soft_threshold", l.Landing.SoftThreshold)
	}
	if _, ok := SlideCurves[l.Slope.IntensityCurve]; !ok {
		return oerror.New(game.ErrorInvalidSetting, "slope.intensity_curve", l.Slope.IntensityCurve)
	}
	if _, ok := RollTriggerFromString(l.Landing.RollTrigger); !ok {
		return oerror.New(game.ErrorInvalidSetting, "landing.roll_trigger", l.Landing.RollTrigger)
	}
	if l.Motor.Strategy != "capsule" && l.Motor.Strategy != "controller" {
		return oerror.New(game.ErrorInvalidSetting, "motor.strategy", l.Motor.Strategy)
	}
	if l.Prediction.BufferCapacity <= 0 {
		return oerror.New(game.ErrorInvalidSetting, "prediction.buffer_capacity", l.Prediction.BufferCapacity)
	}
	return nil
}

// Validate checks that the capsule has positive dimensions and is at least as tall as it is wide.
func (c Capsule) Validate() error {
	if c.Radius <= 0 || c.Height <= 0 || c.Height < c.Radius*2 {
		return oerror.New(game.ErrorInvalidCapsule, c.Radius, c.Height)
	}
	return nil
}
