package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"portfolio-admin/internal/models"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// usageError is returned for bad arguments; Run prints the command's usage line.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

var commandOrder = []string{
	"login", "logout", "whoami",
	"list", "get", "create", "update", "delete", "details", "skills",
	"change-password", "change-username",
	"upload", "presign", "delete-media",
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"login":           {"login -u <username> -p <password>", a.login},
		"logout":          {"logout", a.logout},
		"whoami":          {"whoami", a.whoami},
		"list":            {"list <resource>", a.list},
		"get":             {"get <resource> <id>", a.get},
		"create":          {"create <resource> -f <file.json> [-media field=path ...]", a.create},
		"update":          {"update <resource> <id> -f <file.json> [-media field=path ...]", a.update},
		"delete":          {"delete <resource> <id>", a.remove},
		"details":         {"details <projectId>", a.details},
		"skills":          {"skills", a.skills},
		"change-password": {"change-password -new <password>", a.changePassword},
		"change-username": {"change-username -new <username>", a.changeUsername},
		"upload":          {"upload -file <path> [-folder <folder>]", a.upload},
		"presign":         {"presign -key <key>", a.presign},
		"delete-media":    {"delete-media -url <fileUrl>", a.deleteMedia},
	}
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// ==========================
// Session
// ==========================

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	username := fs.String("u", "", "Admin username")
	password := fs.String("p", "", "Admin password")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if *username == "" || *password == "" {
		return usagef("username and password are required")
	}

	resp, err := a.auth.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	msg := resp.Message
	if msg == "" {
		msg = "Login successful"
	}
	fmt.Fprintf(a.out, "%s (logged in as %s)\n", msg, resp.Username)
	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	if !a.auth.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	username, _ := a.auth.CurrentUsername()
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", username, a.cfg.API.BaseURL)

	// The portfolio has a single personal-info record; the first one is the owner.
	if info := models.FirstPersonalInfo(a.api.PersonalInfo.GetAll(ctx)); info != nil {
		if info.WorkTitle != "" {
			fmt.Fprintf(a.out, "Portfolio owner: %s, %s\n", info.Name, info.WorkTitle)
		} else {
			fmt.Fprintf(a.out, "Portfolio owner: %s\n", info.Name)
		}
	}
	return nil
}

// ==========================
// Resources
// ==========================

func (a *App) resource(name string) (resourceCommands, error) {
	res, ok := a.resources[name]
	if !ok {
		return nil, usagef("unknown resource %q (one of %s)", name, strings.Join(resourceNames(a.resources), ", "))
	}
	return res, nil
}

func (a *App) list(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usagef("expected a resource")
	}
	res, err := a.resource(args[0])
	if err != nil {
		return err
	}
	return a.printJSON(res.list(ctx))
}

func (a *App) get(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usagef("expected a resource and an id")
	}
	res, err := a.resource(args[0])
	if err != nil {
		return err
	}
	item, err := res.get(ctx, args[1])
	if err != nil {
		return err
	}
	return a.printJSON(item)
}

// mediaFlag collects repeated -media field=path values.
type mediaFlag map[string]string

func (m mediaFlag) String() string {
	parts := make([]string, 0, len(m))
	for k, v := range m {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (m mediaFlag) Set(value string) error {
	field, path, ok := strings.Cut(value, "=")
	if !ok || field == "" || path == "" {
		return fmt.Errorf("expected field=path, got %q", value)
	}
	m[field] = path
	return nil
}

// writeFlags parses "-f file.json" and "-media field=path" after the positional args.
func (a *App) writeFlags(name string, args []string) ([]byte, map[string]string, error) {
	fs := a.newFlagSet(name)
	file := fs.String("f", "", "JSON payload file, - for stdin")
	media := mediaFlag{}
	fs.Var(media, "media", "File to upload as field=path (repeatable)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, usagef("%v", err)
	}
	if *file == "" {
		return nil, nil, usagef("-f is required")
	}
	payload, err := readPayload(*file)
	if err != nil {
		return nil, nil, usagef("read %s: %v", *file, err)
	}
	return payload, media, nil
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func (a *App) create(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usagef("expected a resource")
	}
	res, err := a.resource(args[0])
	if err != nil {
		return err
	}
	payload, media, err := a.writeFlags("create", args[1:])
	if err != nil {
		return err
	}
	created, err := res.create(ctx, payload, media)
	if err != nil {
		return err
	}
	return a.printJSON(created)
}

func (a *App) update(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usagef("expected a resource and an id")
	}
	res, err := a.resource(args[0])
	if err != nil {
		return err
	}
	payload, media, err := a.writeFlags("update", args[2:])
	if err != nil {
		return err
	}
	updated, err := res.update(ctx, args[1], payload, media)
	if err != nil {
		return err
	}
	return a.printJSON(updated)
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usagef("expected a resource and an id")
	}
	res, err := a.resource(args[0])
	if err != nil {
		return err
	}
	if err := res.remove(ctx, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s %s\n", args[0], args[1])
	return nil
}

func (a *App) details(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usagef("expected a project id")
	}
	blocks, err := a.api.ProjectDetails.GetByProjectID(ctx, args[0])
	if err != nil {
		return err
	}
	return a.printJSON(models.ForProject(blocks, args[0]))
}

// skills prints the skill list the way the public page renders it.
func (a *App) skills(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usagef("skills takes no arguments")
	}
	skills := a.api.ProfessionalSkills.GetAll(ctx)
	models.SortByDisplayOrder(skills)
	for _, s := range skills {
		fmt.Fprintf(a.out, "%-24s %-12s %s\n", s.SkillName, s.SkillLevel.Label(), strings.Repeat("*", s.SkillLevel.Stars()))
	}
	return nil
}

// ==========================
// Account
// ==========================

func (a *App) changePassword(ctx context.Context, args []string) error {
	fs := a.newFlagSet("change-password")
	newPassword := fs.String("new", "", "New password")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if *newPassword == "" {
		return usagef("-new is required")
	}
	resp, err := a.auth.ChangePassword(ctx, *newPassword)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, messageOr(resp, "Password changed"))
	return nil
}

func (a *App) changeUsername(ctx context.Context, args []string) error {
	fs := a.newFlagSet("change-username")
	newUsername := fs.String("new", "", "New username")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if *newUsername == "" {
		return usagef("-new is required")
	}
	resp, err := a.auth.ChangeUsername(ctx, *newUsername)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, messageOr(resp, "Username changed"))
	return nil
}

func messageOr(resp *models.MessageResponse, fallback string) string {
	if resp != nil && resp.Message != "" {
		return resp.Message
	}
	return fallback
}

// ==========================
// Media
// ==========================

func (a *App) upload(ctx context.Context, args []string) error {
	fs := a.newFlagSet("upload")
	path := fs.String("file", "", "File to upload")
	folder := fs.String("folder", "", "Destination folder")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if *path == "" {
		return usagef("-file is required")
	}
	file, err := os.Open(*path)
	if err != nil {
		return usagef("open %s: %v", *path, err)
	}
	defer file.Close()

	res, err := a.api.Media.Upload(ctx, *folder, file.Name(), file)
	if err != nil {
		return err
	}
	return a.printJSON(res)
}

func (a *App) presign(ctx context.Context, args []string) error {
	fs := a.newFlagSet("presign")
	key := fs.String("key", "", "Object key")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if *key == "" {
		return usagef("-key is required")
	}
	u, err := a.api.Media.PresignedURL(ctx, *key)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, u)
	return nil
}

func (a *App) deleteMedia(ctx context.Context, args []string) error {
	fs := a.newFlagSet("delete-media")
	fileURL := fs.String("url", "", "File URL")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if *fileURL == "" {
		return usagef("-url is required")
	}
	if err := a.api.Media.Delete(ctx, *fileURL); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "File deleted")
	return nil
}
