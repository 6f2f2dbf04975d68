package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/ajanata/tinygo-drivers/pcf8563"
)

var (
	errUsage = errors.New("usage")
	errQuit  = errors.New("quit")
)

// now is replaced in tests.
var now = time.Now

type command struct {
	usage string
	help  string
	run   func(dev *pcf8563.Device, w io.Writer, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"get":      {"", "read date and time", cmdGet},
		"set":      {"YY MM DD WD hh mm ss", "write date and time (WD: 0=Sunday)", cmdSet},
		"settime":  {"hh mm ss", "write the time, keep the date", cmdSetTime},
		"sync":     {"", "write the host clock (UTC)", cmdSync},
		"century":  {"[0|1]", "read or write the century flag", cmdCentury},
		"init":     {"", "reset control registers, alarms and timer", cmdInit},
		"alarm":    {"[minute|hour|day|weekday VALUE|on|off] | flag [clear] | irq [on|off]", "alarm settings", cmdAlarm},
		"timer":    {"[VALUE|on|off] | freq [4096|64|1|1/60] | flag [clear] | irq [on|off] | output [continuous|pulsating]", "countdown timer settings", cmdTimer},
		"clkout":   {"[on|off|32768|1024|32|1]", "clock output settings", cmdClkout},
		"clock":    {"[start|stop]", "start, stop or query the clock", cmdClock},
		"vl":       {"[clear]", "read or clear the voltage-low flag", cmdVoltageLow},
		"testmode": {"ext|por on|off", "switch the EXT_CLK test mode or the power-on reset override", cmdTestMode},
		"help":     {"", "list commands", cmdHelp},
		"quit":     {"", "leave the shell", cmdQuit},
	}
}

// execute runs a single tokenized command line.
func execute(dev *pcf8563.Device, w io.Writer, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q, try help", args[0])
	}
	err := cmd.run(dev, w, args[1:])
	if errors.Is(err, errUsage) {
		return fmt.Errorf("usage: %s %s", args[0], cmd.usage)
	}
	return err
}

func cmdHelp(_ *pcf8563.Device, w io.Writer, _ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(w, "%-9s %s\n          %s\n", name, cmd.help, cmd.usage)
	}
	return nil
}

func cmdQuit(*pcf8563.Device, io.Writer, []string) error {
	return errQuit
}

func cmdGet(dev *pcf8563.Device, w io.Writer, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	dt, err := dev.GetDateTime()
	if err != nil {
		return err
	}
	century, err := dev.Century()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d-%02d-%02d %02d:%02d:%02d %s\n",
		2000+100*int(century)+int(dt.Year), dt.Month, dt.Day, dt.Hours, dt.Minutes, dt.Seconds, weekday(dt.Weekday))
	return nil
}

func cmdSet(dev *pcf8563.Device, _ io.Writer, args []string) error {
	v, err := parseArgs(args, 7)
	if err != nil {
		return err
	}
	return dev.SetDateTime(pcf8563.DateTime{
		Year:    v[0],
		Month:   v[1],
		Day:     v[2],
		Weekday: v[3],
		Hours:   v[4],
		Minutes: v[5],
		Seconds: v[6],
	})
}

func cmdSetTime(dev *pcf8563.Device, _ io.Writer, args []string) error {
	v, err := parseArgs(args, 3)
	if err != nil {
		return err
	}
	return dev.SetTime(pcf8563.Time{Hours: v[0], Minutes: v[1], Seconds: v[2]})
}

func cmdSync(dev *pcf8563.Device, w io.Writer, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	t := now().UTC()
	err := dev.Set(t)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, t.Format(time.DateTime))
	return nil
}

func cmdCentury(dev *pcf8563.Device, w io.Writer, args []string) error {
	switch len(args) {
	case 0:
		century, err := dev.Century()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, century)
		return nil
	case 1:
		v, err := parseArgs(args, 1)
		if err != nil {
			return err
		}
		return dev.SetCentury(v[0])
	default:
		return errUsage
	}
}

func cmdInit(dev *pcf8563.Device, _ io.Writer, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return dev.Init()
}

var alarmComponents = map[string]pcf8563.AlarmComponent{
	"minute":  pcf8563.AlarmMinute,
	"hour":    pcf8563.AlarmHour,
	"day":     pcf8563.AlarmDay,
	"weekday": pcf8563.AlarmWeekday,
}

func cmdAlarm(dev *pcf8563.Device, w io.Writer, args []string) error {
	if len(args) == 0 {
		return showAlarm(dev, w)
	}
	switch args[0] {
	case "flag":
		return flagCommand(w, args[1:], dev.AlarmFlag, dev.ClearAlarmFlag)
	case "irq":
		return switchCommand(w, args[1:], dev.AlarmInterruptEnabled, dev.EnableAlarmInterrupt, dev.DisableAlarmInterrupt)
	}

	comp, ok := alarmComponents[args[0]]
	if !ok || len(args) != 2 {
		return errUsage
	}
	switch args[1] {
	case "on":
		return dev.EnableAlarm(comp)
	case "off":
		return dev.DisableAlarm(comp)
	}
	v, err := parseArgs(args[1:], 1)
	if err != nil {
		return err
	}
	switch comp {
	case pcf8563.AlarmMinute:
		return dev.SetAlarmMinutes(v[0])
	case pcf8563.AlarmHour:
		return dev.SetAlarmHours(v[0])
	case pcf8563.AlarmDay:
		return dev.SetAlarmDay(v[0])
	default:
		return dev.SetAlarmWeekday(v[0])
	}
}

func showAlarm(dev *pcf8563.Device, w io.Writer) error {
	getters := []struct {
		name string
		comp pcf8563.AlarmComponent
		get  func() (uint8, error)
	}{
		{"minute", pcf8563.AlarmMinute, dev.AlarmMinutes},
		{"hour", pcf8563.AlarmHour, dev.AlarmHours},
		{"day", pcf8563.AlarmDay, dev.AlarmDay},
		{"weekday", pcf8563.AlarmWeekday, dev.AlarmWeekday},
	}
	for _, g := range getters {
		v, err := g.get()
		if err != nil {
			return err
		}
		on, err := dev.AlarmEnabled(g.comp)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-7s %2d %s\n", g.name, v, onOff(on))
	}
	return nil
}

var timerFrequencies = map[string]pcf8563.TimerFrequency{
	"4096": pcf8563.Timer4096Hz,
	"64":   pcf8563.Timer64Hz,
	"1":    pcf8563.Timer1Hz,
	"1/60": pcf8563.Timer1_60Hz,
}

var interruptOutputs = map[string]pcf8563.InterruptOutput{
	"continuous": pcf8563.InterruptContinuous,
	"pulsating":  pcf8563.InterruptPulsating,
}

func cmdTimer(dev *pcf8563.Device, w io.Writer, args []string) error {
	if len(args) == 0 {
		v, err := dev.Timer()
		if err != nil {
			return err
		}
		freq, err := dev.TimerFrequency()
		if err != nil {
			return err
		}
		on, err := dev.TimerEnabled()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d ticks at %s Hz, %s\n", v, keyOf(timerFrequencies, freq), onOff(on))
		return nil
	}

	switch args[0] {
	case "on":
		return dev.EnableTimer()
	case "off":
		return dev.DisableTimer()
	case "flag":
		return flagCommand(w, args[1:], dev.TimerFlag, dev.ClearTimerFlag)
	case "irq":
		return switchCommand(w, args[1:], dev.TimerInterruptEnabled, dev.EnableTimerInterrupt, dev.DisableTimerInterrupt)
	case "freq":
		if len(args) != 2 {
			return errUsage
		}
		freq, ok := timerFrequencies[args[1]]
		if !ok {
			return errUsage
		}
		return dev.SetTimerFrequency(freq)
	case "output":
		switch len(args) {
		case 1:
			mode, err := dev.InterruptOutputMode()
			if err != nil {
				return err
			}
			fmt.Fprintln(w, keyOf(interruptOutputs, mode))
			return nil
		case 2:
			mode, ok := interruptOutputs[args[1]]
			if !ok {
				return errUsage
			}
			return dev.SetInterruptOutput(mode)
		default:
			return errUsage
		}
	}

	v, err := parseArgs(args, 1)
	if err != nil {
		return err
	}
	return dev.SetTimer(v[0])
}

var clkoutFrequencies = map[string]pcf8563.ClkoutFrequency{
	"32768": pcf8563.Clkout32768Hz,
	"1024":  pcf8563.Clkout1024Hz,
	"32":    pcf8563.Clkout32Hz,
	"1":     pcf8563.Clkout1Hz,
}

func cmdClkout(dev *pcf8563.Device, w io.Writer, args []string) error {
	switch len(args) {
	case 0:
		freq, err := dev.ClkoutFrequency()
		if err != nil {
			return err
		}
		on, err := dev.ClkoutEnabled()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s Hz, %s\n", keyOf(clkoutFrequencies, freq), onOff(on))
		return nil
	case 1:
	default:
		return errUsage
	}

	switch args[0] {
	case "on":
		return dev.EnableClkout()
	case "off":
		return dev.DisableClkout()
	}
	freq, ok := clkoutFrequencies[args[0]]
	if !ok {
		return errUsage
	}
	return dev.SetClkoutFrequency(freq)
}

func cmdClock(dev *pcf8563.Device, w io.Writer, args []string) error {
	switch {
	case len(args) == 0:
		running, err := dev.ClockRunning()
		if err != nil {
			return err
		}
		if running {
			fmt.Fprintln(w, "running")
		} else {
			fmt.Fprintln(w, "stopped")
		}
		return nil
	case len(args) == 1 && args[0] == "start":
		return dev.StartClock()
	case len(args) == 1 && args[0] == "stop":
		return dev.StopClock()
	default:
		return errUsage
	}
}

func cmdVoltageLow(dev *pcf8563.Device, w io.Writer, args []string) error {
	return flagCommand(w, args, dev.VoltageLow, dev.ClearVoltageLow)
}

func cmdTestMode(dev *pcf8563.Device, _ io.Writer, args []string) error {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return errUsage
	}
	on := args[1] == "on"
	switch args[0] {
	case "ext":
		return dev.SetExternalClockTestMode(on)
	case "por":
		return dev.SetPowerOnResetOverride(on)
	default:
		return errUsage
	}
}

// flagCommand prints a status flag, or clears it with "clear".
func flagCommand(w io.Writer, args []string, get func() (bool, error), reset func() error) error {
	switch {
	case len(args) == 0:
		set, err := get()
		if err != nil {
			return err
		}
		if set {
			fmt.Fprintln(w, "set")
		} else {
			fmt.Fprintln(w, "clear")
		}
		return nil
	case len(args) == 1 && args[0] == "clear":
		return reset()
	default:
		return errUsage
	}
}

// switchCommand prints whether a feature is on, or switches it with "on" and "off".
func switchCommand(w io.Writer, args []string, get func() (bool, error), on, off func() error) error {
	switch {
	case len(args) == 0:
		enabled, err := get()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, onOff(enabled))
		return nil
	case len(args) == 1 && args[0] == "on":
		return on()
	case len(args) == 1 && args[0] == "off":
		return off()
	default:
		return errUsage
	}
}

func parseArgs(args []string, n int) ([]uint8, error) {
	if len(args) != n {
		return nil, errUsage
	}
	out := make([]uint8, n)
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", arg, err)
		}
		out[i] = uint8(v)
	}
	return out, nil
}

func keyOf[K comparable, V comparable](m map[K]V, v V) K {
	var zero K
	for k, mv := range m {
		if mv == v {
			return k
		}
	}
	return zero
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func weekday(wd uint8) string {
	if wd > 6 {
		return "?"
	}
	return time.Weekday(wd).String()
}
