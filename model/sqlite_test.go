package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/satishbabariya/pure-orm/connection"
	"github.com/satishbabariya/pure-orm/database"
	"github.com/satishbabariya/pure-orm/driver"
	"github.com/satishbabariya/pure-orm/query"
	"github.com/satishbabariya/pure-orm/runtime/types"
)

// SQLiteSuite runs the model layer against an in-memory SQLite database.
type SQLiteSuite struct {
	suite.Suite
	ctx context.Context
	db  *database.Database
}

func TestSQLiteSuite(t *testing.T) {
	suite.Run(t, new(SQLiteSuite))
}

func (s *SQLiteSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = database.New(s.ctx, &connection.Settings{Type: driver.SQLite, Filename: ":memory:"})
	s.Require().True(s.db.IsConnected(), s.db.Err())

	s.Require().NoError(CreateTable[User](s.ctx, s.db, true))
}

func (s *SQLiteSuite) TearDownTest() {
	s.NoError(s.db.Close())
}

func (s *SQLiteSuite) TestLifecycle() {
	exists, err := TableExists(s.ctx, s.db, "Users")
	s.Require().NoError(err)
	s.True(exists)

	u := New(s.db, User{}, types.NewRecord("name", "ada"))
	s.False(u.Exists())

	s.Require().NoError(u.Save(s.ctx))
	s.True(u.Exists())
	s.Equal(int64(1), u.Value("id").Int())

	found, err := FindByID[User](s.ctx, s.db, 1)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("ada", found.Value("name").String())
	s.Equal(types.BoolValue(true), found.Value("active"))

	s.Require().NoError(found.Set("active", false))
	s.Require().NoError(found.Save(s.ctx))

	inactive, err := Count[User](s.ctx, s.db, query.Eq("active", false))
	s.Require().NoError(err)
	s.Equal(int64(1), inactive)

	s.Require().NoError(found.Erase(s.ctx))
	s.False(found.Exists())

	n, err := CountTable(s.ctx, s.db, "Users", query.Condition{})
	s.Require().NoError(err)
	s.Zero(n)

	missing, err := FindByID[User](s.ctx, s.db, 1)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *SQLiteSuite) TestSeedClearAndDrop() {
	s.Require().NoError(CreateTable[Post](s.ctx, s.db, true))

	posts, err := All[Post](s.ctx, s.db)
	s.Require().NoError(err)
	s.Len(posts, 2)
	s.Equal("hello", posts[0].Value("body").String())
	s.True(posts[0].Value("user_id").IsNull())

	removed, err := ClearTable(s.ctx, s.db, "articles")
	s.Require().NoError(err)
	s.Equal(int64(2), removed)

	s.Require().NoError(DropTable(s.ctx, s.db, "articles"))
	exists, err := TableExists(s.ctx, s.db, "articles")
	s.Require().NoError(err)
	s.False(exists)

	s.NoError(DropTable(s.ctx, s.db, "articles"))
}

func (s *SQLiteSuite) TestConstraintErrors() {
	s.Require().NoError(CreateTable[Post](s.ctx, s.db, false))

	p := New(s.db, Post{}, types.NewRecord("user_id", 99, "body", "orphan"))
	err := p.Save(s.ctx)
	s.ErrorIs(err, driver.ErrForeignKeyConstraint)
	s.False(p.Exists())

	err = CreateTable[Post](s.ctx, s.db, false)
	s.Error(err)
}

func (s *SQLiteSuite) TestWhereAndInsertMany() {
	require.NoError(s.T(), InsertMany(s.ctx, s.db,
		New(s.db, User{}, types.NewRecord("name", "ada")),
		New(s.db, User{}, types.NewRecord("name", "bob", "active", false)),
		New(s.db, User{}, types.NewRecord("name", "cy")),
	))

	active, err := Where[User](s.ctx, s.db, query.Eq("active", true))
	s.Require().NoError(err)
	s.Len(active, 2)

	first, err := Find[User](s.ctx, s.db, query.Like("name", "b%"))
	s.Require().NoError(err)
	s.Require().NotNil(first)
	s.Equal("bob", first.Value("name").String())
}
