package sqlinline

const QGetUser = `--sql 0aa2c933-298a-4361-8a6d-891c8450258f
select id, email, first_name, last_name, image, created_at
from users
where id = $1;
`
